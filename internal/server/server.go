package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/logging"
	"skycast/internal/predictor"
)

// Server owns the prediction API lifecycle: a flock-guarded single instance
// serving HTTP until its context is canceled.
type Server struct {
	bind         string
	store        *flightstore.Store
	orchestrator *predictor.Orchestrator
	logger       *slog.Logger

	lock       *flock.Flock
	listener   net.Listener
	httpServer *http.Server
}

// New builds a server and claims the data directory lock. A second server
// pointed at the same data directory fails fast instead of racing the first.
func New(cfg *config.Config, store *flightstore.Store, orchestrator *predictor.Orchestrator, logger *slog.Logger) (*Server, error) {
	if cfg == nil || store == nil || orchestrator == nil {
		return nil, errors.New("server requires config, store, and orchestrator")
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "skycast.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire server lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another skycast server is already using %s", cfg.Paths.DataDir)
	}

	srv := &Server{
		bind:         cfg.Paths.APIBind,
		store:        store,
		orchestrator: orchestrator,
		logger:       logging.NewComponentLogger(logger, "server"),
		lock:         lock,
	}
	srv.httpServer = &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start begins serving HTTP until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close shuts the HTTP server down and releases the data directory lock.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			return fmt.Errorf("release server lock: %w", err)
		}
	}
	return nil
}
