package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/cache"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/config"
	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/websocket"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		AppEnv:                  "test",
		Port:                    "0",
		CacheTTL:                time.Minute,
		RateLimitPerSecond:      1000,
		RateLimitBurst:          1000,
		CORSAllowOrigins:        "*",
		MaxWebSocketConnections: 10,
	}

	store := cache.NewMemoryStore(cfg.CacheTTL, clockwork.NewFakeClock())
	hub := websocket.NewHub(cfg.MaxWebSocketConnections)
	t.Cleanup(hub.Stop)

	return NewServer(cfg, store, hub, nil)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echoContentType, echoJSONMime)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSONMime    = "application/json"
)

func TestHandleSentiment_ValidBatch(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze",
		`{"texts":["I love this","I hate this","This is a table"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		LexiconInfo struct {
			PositiveWords int `json:"positive_words"`
			NegativeWords int `json:"negative_words"`
		} `json:"lexicon_info"`
		Sentiments []struct {
			Score      float64 `json:"score"`
			Label      string  `json:"label"`
			Confidence float64 `json:"confidence"`
			Text       string  `json:"text"`
		} `json:"sentiments"`
		Stats struct {
			Positive int     `json:"positive"`
			Negative int     `json:"negative"`
			Neutral  int     `json:"neutral"`
			Average  float64 `json:"average"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 40, resp.LexiconInfo.PositiveWords)
	assert.Equal(t, 38, resp.LexiconInfo.NegativeWords)
	require.Len(t, resp.Sentiments, 3)
	assert.Equal(t, "Positive", resp.Sentiments[0].Label)
	assert.Equal(t, "Negative", resp.Sentiments[1].Label)
	assert.Equal(t, "Neutral", resp.Sentiments[2].Label)
	assert.Equal(t, 1, resp.Stats.Positive)
	assert.Equal(t, 1, resp.Stats.Negative)
	assert.Equal(t, 1, resp.Stats.Neutral)
}

func TestHandleSentiment_CustomLexicon(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze",
		`{"texts":["the flurb is here"],"custom_lexicons":{"positive":["flurb"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sentiments []struct {
			Label string `json:"label"`
		} `json:"sentiments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Sentiments, 1)
	assert.Equal(t, "Positive", resp.Sentiments[0].Label)
}

func TestHandleSentiment_EmptyBatchRejected(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{"texts":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSentiment_BlankTextRejected(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{"texts":["fine","   "]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "non-empty")
}

func TestHandleSentiment_CachedResponseIsIdentical(t *testing.T) {
	srv := testServer(t)
	body := `{"texts":["I love this","not great"]}`

	first := doJSON(t, srv, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, srv, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestHandleSummarize_Valid(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze/summarize",
		`{"texts":["alpha beta. alpha beta. gamma."]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []string `json:"results"`
		Stats   struct {
			OriginalLength   int     `json:"original_length"`
			SummaryLength    int     `json:"summary_length"`
			CompressionRatio float64 `json:"compression_ratio"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "alpha beta. alpha beta. gamma", resp.Results[0])
	assert.Equal(t, 5, resp.Stats.OriginalLength)
	assert.Equal(t, 5, resp.Stats.SummaryLength)
	assert.InDelta(t, 1.0, resp.Stats.CompressionRatio, 1e-9)
}

func TestHandleSummarize_TruncatesToTopSentences(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze/summarize",
		`{"texts":["a a a. b b. a b. c."]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []string `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "a a a. b b. a b", resp.Results[0])
}

func TestHandleSummarize_NoValidTextRejected(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze/summarize", `{"texts":["  ","\t"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no valid text")

	rec = doJSON(t, srv, http.MethodPost, "/analyze/summarize", `{"texts":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummarize_BlankFirstTextRejected(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/analyze/summarize",
		`{"texts":["   ","real content here."]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummarize_CachedResponseIsIdentical(t *testing.T) {
	srv := testServer(t)
	body := `{"texts":["one two. three four. five."]}`

	first := doJSON(t, srv, http.MethodPost, "/analyze/summarize", body)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, srv, http.MethodPost, "/analyze/summarize", body)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestHandleAnalyze_BasicStatistics(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analyze",
		`{"data":[1,2,3,4],"analysis_type":"basic"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Statistics struct {
			Mean   float64 `json:"mean"`
			Median float64 `json:"median"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 2.5, resp.Statistics.Mean, 1e-9)
	assert.InDelta(t, 2.5, resp.Statistics.Median, 1e-9)
}

func TestHandleAnalyze_Trend(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analyze",
		`{"data":[1,2,3,4,5],"analysis_type":"trend"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Trend struct {
			Slope     float64 `json:"slope"`
			Direction string  `json:"direction"`
		} `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 1.0, resp.Trend.Slope, 1e-9)
	assert.Equal(t, "upward", resp.Trend.Direction)
}

func TestHandleAnalyze_UnsupportedType(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analyze",
		`{"data":[1,2,3],"analysis_type":"quantum"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_TooFewPoints(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/analyze", `{"data":[1]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePredict_Valid(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict",
		`{"data":[1,2,3,4,5],"horizon":2,"confidence":0.95}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Predictions []float64 `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Predictions, 2)
	assert.InDelta(t, 6.0, resp.Predictions[0], 1e-9)
}

func TestHandlePredict_DefaultsConfidence(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict",
		`{"data":[1,2,3,4,5],"horizon":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Confidence float64 `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.95, resp.Confidence)
}

func TestHandlePredict_InvalidHorizon(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/predict",
		`{"data":[1,2,3],"horizon":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDetectAnomalies_Valid(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/detect-anomalies",
		`{"data":[10,11,10,12,10,11,10,12,10,11,10,12,10,11,10,12,10,11,10,12,100],"threshold":0.95}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Anomalies []struct {
			Index int     `json:"index"`
			Value float64 `json:"value"`
		} `json:"anomalies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Anomalies)
	assert.Equal(t, 20, resp.Anomalies[0].Index)
	assert.Equal(t, 100.0, resp.Anomalies[0].Value)
}

func TestHandleCorrelation_Valid(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/advanced/correlation",
		`{"series":{"a":[1,2,3,4],"b":[2,4,6,8]}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Correlation map[string]map[string]float64 `json:"correlation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 1.0, resp.Correlation["a"]["b"], 1e-9)
}

func TestHandleCorrelation_LengthMismatch(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/advanced/correlation",
		`{"series":{"a":[1,2,3],"b":[2,4]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAdvancedAnalyze_CombinedResult(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/advanced/analyze",
		`{"data":[1,2,3,4,5,6]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Statistics map[string]float64 `json:"statistics"`
		Trend      map[string]any     `json:"trend"`
		NextValue  float64            `json:"next_value"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 7.0, resp.NextValue, 1e-9)
	assert.Equal(t, "upward", resp.Trend["direction"])
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = doJSON(t, srv, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDHeaderPreserved(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied", rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
