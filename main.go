package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/config"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/logger"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/server"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/session"
)

// sweepInterval is how often expired sessions are removed
const sweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadWithDotEnv(ctx, ".env")
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.IsLocal()); err != nil {
		logger.Fatal("Invalid logging configuration", err)
	}

	logger.Info("Starting report visualizer", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"version":     config.GetVersion(),
	})

	if err := run(ctx, cfg, nil); err != nil {
		logger.Fatal("Service stopped with error", err)
	}
	logger.Info("Server stopped")
}

// run serves HTTP and sweeps sessions until ctx is cancelled. If ready is not
// nil it receives the listening address.
func run(ctx context.Context, cfg *config.Config, ready chan<- string) error {
	sessions := session.NewStore(cfg.SessionTTL)
	srv, err := server.NewServer(cfg, sessions)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", logger.Fields{"addr": listener.Addr().String()})
		if ready != nil {
			ready <- listener.Addr().String()
		}
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(gCtx, sweepInterval)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", err)
		}
		return nil
	})

	return g.Wait()
}
