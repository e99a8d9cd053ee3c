// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis request metrics
var (
	// AnalysisRequestsTotal tracks analysis requests by endpoint and outcome
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total analysis requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	// AnalysisDuration tracks analysis handler latency in seconds
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Analysis duration in seconds by endpoint",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"endpoint"},
	)

	// SentimentBatchSize tracks how many texts arrive per sentiment request
	SentimentBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_batch_size",
			Help:    "Number of texts per sentiment analysis request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)
)

// Cache metrics
var (
	// CacheOpsTotal tracks result cache lookups by backend and outcome
	CacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Result cache operations by backend and result (hit/miss/error)",
		},
		[]string{"backend", "result"},
	)
)

// WebSocket metrics
var (
	// WebsocketClients tracks currently connected websocket clients
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients_current",
			Help: "Currently connected WebSocket clients",
		},
	)
)
