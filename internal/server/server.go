// If you are AI: This file implements the HTTP server lifecycle and routing.
// The gateway, WebSocket endpoint and admin API share one listener; health has its own.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"amfgate/internal/config"
	"amfgate/internal/core/protocol/amf3"
	"amfgate/internal/core/session"
	"amfgate/internal/svc/api"
	"amfgate/internal/svc/gateway"
	"amfgate/internal/svc/health"
	"amfgate/internal/svc/remoting"
	"amfgate/internal/svc/wsamf"
)

// Server wraps the HTTP servers and their dependencies.
type Server struct {
	httpServer   *http.Server
	healthServer *http.Server
	services     *remoting.Registry
	stopping     atomic.Bool
}

var errStopping = errors.New("shutting down")

// New creates a new server instance with the given configuration.
// The server is not started until Start is called.
func New(cfg *config.Config) *Server {
	s := &Server{}
	externals := amf3.NewExternalRegistry()
	services := remoting.NewRegistry()
	remoting.RegisterBuiltins(services, time.Now())
	sessions := session.NewRegistry(externals)

	healthSvc := health.New(s.ready)
	gw := gateway.NewHandler(services, externals, gateway.Options{
		Path:           cfg.AMF.GatewayPath,
		MaxPacketBytes: cfg.AMF.MaxPacketBytes,
		ResetPerValue:  *cfg.AMF.ResetPerValue,
	})
	ws := wsamf.NewHandler(sessions, services, wsamf.Options{
		Path:        cfg.AMF.WSPath,
		ReadLimit:   cfg.AMF.WSReadLimit,
		IdleTimeout: cfg.AMF.WSIdleTimeout(),
	})

	mux := http.NewServeMux()
	healthSvc.RegisterRoutes(mux)
	gw.RegisterRoutes(mux)
	ws.RegisterRoutes(mux)
	api.NewService(sessions, gw, services).RegisterRoutes(mux)

	healthMux := http.NewServeMux()
	healthSvc.RegisterRoutes(healthMux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpServer.RegisterOnShutdown(ws.CloseAll)

	s.httpServer = httpServer
	s.healthServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HealthPort),
		Handler:           healthMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.services = services
	return s
}

// ready reports errStopping once shutdown has begun.
func (s *Server) ready() error {
	if s.stopping.Load() {
		return errStopping
	}
	return nil
}

// Handler returns the main HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Services returns the remoting registry so callers can register their own targets.
func (s *Server) Services() *remoting.Registry {
	return s.services
}

// Start begins serving HTTP requests on both listeners.
// This method blocks until both are stopped or one fails.
func (s *Server) Start() error {
	var g errgroup.Group
	for _, srv := range []*http.Server{s.httpServer, s.healthServer} {
		srv := srv
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Shutdown gracefully stops both listeners.
// Returns an error if shutdown fails or times out.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopping.Store(true)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.httpServer.Shutdown(ctx) })
	g.Go(func() error { return s.healthServer.Shutdown(ctx) })
	return g.Wait()
}

// ShutdownWithTimeout stops the server with a fixed 5-second timeout.
// This is a convenience wrapper around Shutdown.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
