// If you are AI: This file implements the WebSocket AMF endpoint.
// Handles GET {ws_path} upgrades; every binary frame is one AMF0 command answered
// with _result or _error, with AMF3 values sharing the connection's reference tables.

package wsamf

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"amfgate/internal/core/session"
	"amfgate/internal/svc/remoting"
)

// Options configures the endpoint.
type Options struct {
	Path        string
	ReadLimit   int64
	IdleTimeout time.Duration
}

// Handler handles WebSocket AMF connections.
type Handler struct {
	sessions *session.Registry
	services *remoting.Registry
	opts     Options
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHandler creates a new WebSocket AMF handler.
func NewHandler(sessions *session.Registry, services *remoting.Registry, opts Options) *Handler {
	return &Handler{
		sessions: sessions,
		services: services,
		opts:     opts,
		conns:    make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// Remoting clients are embedded players served from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes registers the WebSocket route on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle(h.opts.Path, h)
}

// ServeHTTP upgrades the connection and serves commands until the peer leaves.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade failed, response already sent
		return
	}

	h.track(conn, true)
	s := h.sessions.Open(r.RemoteAddr)
	log.Printf("wsamf: session %d opened from %s", s.ID, s.RemoteAddr)
	defer func() {
		h.sessions.Close(s.ID)
		h.track(conn, false)
		conn.Close()
		log.Printf("wsamf: session %d closed", s.ID)
	}()

	if err := h.serve(r.Context(), conn, s); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Printf("wsamf: session %d: %v", s.ID, err)
	}
}

// serve reads frames until the connection fails.
func (h *Handler) serve(ctx context.Context, conn *websocket.Conn, s *session.Session) error {
	if h.opts.ReadLimit > 0 {
		conn.SetReadLimit(h.opts.ReadLimit)
	}
	for {
		if h.opts.IdleTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(h.opts.IdleTimeout)); err != nil {
				return err
			}
		}
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, h.HandleFrame(ctx, s, data)); err != nil {
			return err
		}
	}
}

// CloseAll closes every open connection. Hijacked connections are not closed by
// http.Server.Shutdown, so the server calls this on shutdown.
func (h *Handler) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}

// track adds or removes a live connection.
func (h *Handler) track(conn *websocket.Conn, open bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if open {
		h.conns[conn] = struct{}{}
	} else {
		delete(h.conns, conn)
	}
}
