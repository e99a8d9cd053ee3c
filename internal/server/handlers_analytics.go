package server

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/analytics"
	apperrors "github.com/vrnd369/dataanalyzer-pro-Test16/internal/errors"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/metrics"
)

type analyzeRequest struct {
	Data         []float64 `json:"data"`
	AnalysisType string    `json:"analysis_type"`
}

type predictRequest struct {
	Data       []float64 `json:"data"`
	Horizon    int       `json:"horizon"`
	Confidence float64   `json:"confidence"`
}

type anomalyRequest struct {
	Data      []float64 `json:"data"`
	Threshold float64   `json:"threshold"`
}

type correlationRequest struct {
	Series map[string][]float64 `json:"series"`
}

type forecastRequest struct {
	Data       []float64 `json:"data"`
	Periods    int       `json:"periods"`
	Confidence float64   `json:"confidence"`
}

type timeSeriesRequest struct {
	Data []float64 `json:"data"`
}

// instrument wraps an analytics handler body with request metrics.
func instrument(endpoint string, fn func() error) error {
	timer := time.Now()
	err := fn()
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.AnalysisRequestsTotal.WithLabelValues(endpoint, status).Inc()
	metrics.AnalysisDuration.WithLabelValues(endpoint).Observe(time.Since(timer).Seconds())
	return err
}

func (s *Server) handleAnalyze(c echo.Context) error {
	return instrument("/api/analyze", func() error {
		var req analyzeRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}

		ctx := c.Request().Context()

		switch req.AnalysisType {
		case "", "basic":
			stats, err := analytics.Describe(req.Data)
			if err != nil {
				return err
			}
			s.publishEvent(ctx, "statistics", map[string]any{"points": len(req.Data)})
			return respond(c, map[string]any{"statistics": stats})

		case "trend":
			trend, err := analytics.DetectTrend(req.Data)
			if err != nil {
				return err
			}
			s.publishEvent(ctx, "trend", map[string]any{
				"direction": trend.Direction,
				"strength":  trend.Strength,
			})
			return respond(c, map[string]any{"trend": trend})

		case "insights":
			insights, err := analytics.GenerateInsights(req.Data)
			if err != nil {
				return err
			}
			s.publishEvent(ctx, "insights", map[string]any{"count": len(insights)})
			return respond(c, map[string]any{"insights": insights})

		default:
			return apperrors.ValidationError("unsupported analysis type").
				WithContext("analysis_type", req.AnalysisType)
		}
	})
}

func (s *Server) handlePredict(c echo.Context) error {
	return instrument("/api/predict", func() error {
		var req predictRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}
		if req.Confidence == 0 {
			req.Confidence = analytics.DefaultForecastConfidence
		}

		forecast, err := analytics.PredictFuture(req.Data, req.Horizon, req.Confidence)
		if err != nil {
			return err
		}

		s.publishEvent(c.Request().Context(), "prediction", map[string]any{
			"horizon":    req.Horizon,
			"confidence": req.Confidence,
		})
		return respond(c, forecast)
	})
}

func (s *Server) handleDetectAnomalies(c echo.Context) error {
	return instrument("/api/detect-anomalies", func() error {
		var req anomalyRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}
		if req.Threshold == 0 {
			req.Threshold = analytics.DefaultAnomalyThreshold
		}

		anomalies, err := analytics.DetectAnomalies(req.Data, req.Threshold)
		if err != nil {
			return err
		}

		s.publishEvent(c.Request().Context(), "anomalies", map[string]any{
			"points":    len(req.Data),
			"anomalies": len(anomalies),
		})
		return respond(c, map[string]any{"anomalies": anomalies})
	})
}

func (s *Server) handleCorrelation(c echo.Context) error {
	return instrument("/api/advanced/correlation", func() error {
		var req correlationRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}

		matrix, err := analytics.CorrelationMatrix(req.Series)
		if err != nil {
			return err
		}

		s.publishEvent(c.Request().Context(), "correlation", map[string]any{
			"series": len(req.Series),
		})
		return respond(c, map[string]any{"correlation": matrix})
	})
}

func (s *Server) handleForecast(c echo.Context) error {
	return instrument("/api/advanced/forecast", func() error {
		var req forecastRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}
		if req.Confidence == 0 {
			req.Confidence = analytics.DefaultForecastConfidence
		}

		forecast, err := analytics.PredictFuture(req.Data, req.Periods, req.Confidence)
		if err != nil {
			return err
		}

		s.publishEvent(c.Request().Context(), "forecast", map[string]any{
			"periods": req.Periods,
		})
		return respond(c, forecast)
	})
}

func (s *Server) handleAdvancedAnalyze(c echo.Context) error {
	return instrument("/api/advanced/analyze", func() error {
		var req timeSeriesRequest
		if err := c.Bind(&req); err != nil {
			return apperrors.ValidationError("invalid request body")
		}

		stats, err := analytics.Describe(req.Data)
		if err != nil {
			return err
		}
		trend, err := analytics.DetectTrend(req.Data)
		if err != nil {
			return err
		}
		forecast, err := analytics.PredictFuture(req.Data, 1, analytics.DefaultForecastConfidence)
		if err != nil {
			return err
		}

		s.publishEvent(c.Request().Context(), "time_series", map[string]any{
			"points":    len(req.Data),
			"direction": trend.Direction,
		})
		return respond(c, map[string]any{
			"statistics": stats,
			"trend":      trend,
			"next_value": forecast.Predictions[0],
		})
	})
}

func respond(c echo.Context, body any) error {
	if err := c.JSON(200, body); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
