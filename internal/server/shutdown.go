// If you are AI: This file handles graceful shutdown orchestration for the server process.

package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the server and blocks until ctx is cancelled, SIGINT or SIGTERM arrives,
// or a listener fails. The server is then shut down with a 5-second timeout.
func Run(ctx context.Context, srv *Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			_ = srv.ShutdownWithTimeout()
			return err
		}
		return nil
	case <-ctx.Done():
		log.Printf("Shutting down")
	}

	if err := srv.ShutdownWithTimeout(); err != nil {
		return err
	}
	return <-errc
}
