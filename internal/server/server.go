package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/cache"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/config"
	apperrors "github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/websocket"
)

// Pinger is implemented by cache backends with an external connection that
// readiness checks should verify.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	cache     cache.Store
	hub       *websocket.Hub
	pinger    Pinger
	startTime time.Time
}

// NewServer builds the echo instance with middleware and routes. pinger may
// be nil when the cache backend has no external connection.
func NewServer(cfg *config.Config, store cache.Store, hub *websocket.Hub, pinger Pinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		config:    cfg,
		cache:     store,
		hub:       hub,
		pinger:    pinger,
		startTime: time.Now(),
	}

	e.Use(middleware.Recover())
	e.Use(srv.requestIDMiddleware)
	e.Use(requestLoggerMiddleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
	}))
	e.Use(apperrors.Middleware())

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
