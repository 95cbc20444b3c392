// If you are AI: This file implements HTTP API handlers.
// All handlers are read-only snapshots encoded as JSON.

package api

import (
	"encoding/json"
	"net/http"
	"runtime"

	"amfgate/internal/core/session"
	"amfgate/internal/svc/gateway"
	"amfgate/internal/svc/remoting"
)

// ServerResponse represents the /api/server response.
type ServerResponse struct {
	Version         string   `json:"version"`
	Uptime          int64    `json:"uptime"` // seconds
	GoVersion       string   `json:"go_version"`
	EnabledServices []string `json:"enabled_services"`
	Targets         []string `json:"targets"`
}

// SessionsResponse represents the /api/sessions response.
type SessionsResponse struct {
	Sessions []session.Info `json:"sessions"`
}

// GatewayResponse represents the /api/gateway response.
type GatewayResponse struct {
	Gateway gateway.Stats `json:"gateway"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServer handles GET /api/server.
// Returns server version, uptime, enabled services and remoting targets.
func (s *Service) handleServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	response := ServerResponse{
		Version:   remoting.Version,
		Uptime:    getCurrentTime() - s.startTime,
		GoVersion: runtime.Version(),
		EnabledServices: []string{
			"amf_gateway",
			"ws_amf",
		},
		Targets: s.targets.Targets(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleSessions handles GET /api/sessions.
// Returns live WebSocket sessions with their reference-table sizes.
func (s *Service) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.writeJSON(w, http.StatusOK, SessionsResponse{Sessions: s.sessions.List()})
}

// handleGateway handles GET /api/gateway.
// Returns the gateway counters.
func (s *Service) handleGateway(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.writeJSON(w, http.StatusOK, GatewayResponse{Gateway: s.gateway.Stats()})
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
