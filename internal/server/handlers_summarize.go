package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/cache"
	apperrors "github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/metrics"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/summary"
)

type summarizeRequest struct {
	Texts []string `json:"texts"`
}

// handleSummarize summarizes the first text of the batch. Like scoring,
// summarization is deterministic, so equal inputs share a cached response.
func (s *Server) handleSummarize(c echo.Context) error {
	endpoint := "/analyze/summarize"
	timer := time.Now()

	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
		return apperrors.ValidationError("invalid request body")
	}

	hasContent := false
	for _, text := range req.Texts {
		if strings.TrimSpace(text) != "" {
			hasContent = true
			break
		}
	}
	if !hasContent {
		metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
		return apperrors.ValidationError("no valid text provided for summarization")
	}

	ctx := c.Request().Context()

	// Only the first text is summarized, so it alone forms the cache key.
	key := cache.Key(endpoint, []byte(req.Texts[0]))

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

	result, err := summary.Summarize(req.Texts[0])
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return apperrors.InternalError("failed to encode response", err)
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		metrics.CacheOpsTotal.WithLabelValues(s.cache.Backend(), "error").Inc()
		slog.WarnContext(ctx, "Cache store failed", "error", err)
	}

	s.publishEvent(ctx, "summarization", map[string]any{
		"original_length": result.Stats.OriginalLength,
		"summary_length":  result.Stats.SummaryLength,
	})

	metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues(endpoint).Observe(time.Since(timer).Seconds())

	if err := c.JSONBlob(200, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
