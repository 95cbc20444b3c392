// If you are AI: This file implements the health check endpoint for monitoring and integration tests.

package health

import (
	"net/http"
)

// Service provides health check functionality.
type Service struct {
	ready func() error
}

// New creates a health service. ready, when non-nil, is consulted on every request
// and a non-nil error turns the answer into 503.
func New(ready func() error) *Service {
	return &Service{ready: ready}
}

// RegisterRoutes adds health check routes to the provided mux.
// Currently registers /healthz.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
}

// handleHealth responds to GET and HEAD health checks with a plain-text status.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.ready != nil {
		if err := s.ready(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(err.Error() + "\n"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
