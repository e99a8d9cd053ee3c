package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no rate limiting)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limiter := newRateLimiter(s.config.RateLimitPerSecond, s.config.RateLimitBurst)

	// Text analysis
	s.echo.POST("/analyze", s.handleSentiment, limiter)
	s.echo.POST("/analyze/summarize", s.handleSummarize, limiter)

	// Statistical analysis
	s.echo.POST("/api/analyze", s.handleAnalyze, limiter)
	s.echo.POST("/api/predict", s.handlePredict, limiter)
	s.echo.POST("/api/detect-anomalies", s.handleDetectAnomalies, limiter)
	s.echo.POST("/api/advanced/correlation", s.handleCorrelation, limiter)
	s.echo.POST("/api/advanced/forecast", s.handleForecast, limiter)
	s.echo.POST("/api/advanced/analyze", s.handleAdvancedAnalyze, limiter)

	// Event stream
	s.echo.GET("/ws", s.handleWebSocket)
}
