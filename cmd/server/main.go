package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/cache"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/config"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/logging"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/server"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/websocket"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupCache selects the result-cache backend: Redis when REDIS_URL is set,
// in-memory otherwise. Returns the store, a readiness pinger (nil for the
// in-memory backend) and a cleanup function.
func setupCache(cfg *config.Config, clock clockwork.Clock) (cache.Store, server.Pinger, func()) {
	if cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			slog.Error("Failed to create Redis cache", "error", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}

		return store, store, func() { _ = store.Close() }
	}

	store := cache.NewMemoryStore(cfg.CacheTTL, clock)
	stopEviction := store.StartEvictionTimer(1 * time.Minute)
	return store, nil, stopEviction
}

func runGracefulShutdown(srv *server.Server, hub *websocket.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	store, pinger, cleanupCache := setupCache(cfg, clock)
	defer cleanupCache()
	slog.Info("Result cache ready", "backend", store.Backend(), "ttl", cfg.CacheTTL)

	hub := websocket.NewHub(cfg.MaxWebSocketConnections)

	srv := server.NewServer(cfg, store, hub, pinger)

	done := runGracefulShutdown(srv, hub)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
