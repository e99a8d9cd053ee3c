package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/cache"
	apperrors "github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/logging"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/metrics"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/sentiment"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/websocket"
)

type sentimentRequest struct {
	Texts          []string                  `json:"texts"`
	CustomLexicons *sentiment.CustomLexicons `json:"custom_lexicons,omitempty"`
}

func (s *Server) handleSentiment(c echo.Context) error {
	endpoint := "/analyze"
	timer := time.Now()

	var req sentimentRequest
	if err := c.Bind(&req); err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
		return apperrors.ValidationError("invalid request body")
	}

	if len(req.Texts) == 0 {
		metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
		return apperrors.ValidationError("texts must contain at least one entry")
	}
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
			return apperrors.ValidationError("texts must be non-empty strings").
				WithContext("index", i)
		}
	}

	metrics.SentimentBatchSize.Observe(float64(len(req.Texts)))
	ctx := c.Request().Context()

	// Scoring is deterministic: equal canonical requests share a cached
	// response.
	canonical, err := json.Marshal(req)
	if err != nil {
		return apperrors.InternalError("failed to canonicalize request", err)
	}
	key := cache.Key(endpoint, canonical)

	if payload, ok, cacheErr := s.cache.Get(ctx, key); cacheErr != nil {
		metrics.CacheOpsTotal.WithLabelValues(s.cache.Backend(), "error").Inc()
		slog.WarnContext(ctx, "Cache lookup failed", "error", cacheErr)
	} else if ok {
		metrics.CacheOpsTotal.WithLabelValues(s.cache.Backend(), "hit").Inc()
		metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
		metrics.AnalysisDuration.WithLabelValues(endpoint).Observe(time.Since(timer).Seconds())
		return c.JSONBlob(200, payload)
	} else {
		metrics.CacheOpsTotal.WithLabelValues(s.cache.Backend(), "miss").Inc()
	}

	report := sentiment.AnalyzeBatch(req.Texts, req.CustomLexicons)

	payload, err := json.Marshal(report)
	if err != nil {
		return apperrors.InternalError("failed to encode response", err)
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		metrics.CacheOpsTotal.WithLabelValues(s.cache.Backend(), "error").Inc()
		slog.WarnContext(ctx, "Cache store failed", "error", err)
	}

	s.publishEvent(ctx, "sentiment", map[string]any{
		"texts":    len(req.Texts),
		"positive": report.Stats.Positive,
		"negative": report.Stats.Negative,
		"neutral":  report.Stats.Neutral,
		"average":  report.Stats.Average,
	})

	metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues(endpoint).Observe(time.Since(timer).Seconds())

	if err := c.JSONBlob(200, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// publishEvent pushes a completion event to websocket subscribers, tagging
// it with the request ID so API responses and stream events correlate.
func (s *Server) publishEvent(ctx context.Context, eventType string, summary any) {
	requestID, _ := logging.RequestID(ctx)
	s.hub.Publish(websocket.Event{
		Type:      eventType,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Summary:   summary,
	})
}
