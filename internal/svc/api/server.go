// If you are AI: This file provides HTTP API service integration.
// The API exposes server state, live sessions and gateway counters.

package api

import (
	"net/http"
	"time"

	"amfgate/internal/core/session"
	"amfgate/internal/svc/gateway"
)

// Service provides HTTP API functionality.
type Service struct {
	sessions  *session.Registry
	gateway   GatewayStats
	targets   TargetLister
	startTime int64
}

// GatewayStats defines the interface for reading gateway counters.
// This allows the API to work with the gateway without tight coupling.
type GatewayStats interface {
	Stats() gateway.Stats
}

// TargetLister lists the registered remoting targets.
type TargetLister interface {
	Targets() []string
}

// NewService creates a new API service.
func NewService(sessions *session.Registry, gw GatewayStats, targets TargetLister) *Service {
	return &Service{
		sessions:  sessions,
		gateway:   gw,
		targets:   targets,
		startTime: getCurrentTime(),
	}
}

// RegisterRoutes registers API routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/server", s.handleServer)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/gateway", s.handleGateway)
}

// getCurrentTime returns current Unix timestamp.
// Extracted for testability.
func getCurrentTime() int64 {
	return time.Now().Unix()
}
