package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-stats/src/engine"
	"trade-stats/src/logger"
	"trade-stats/src/models"
	"trade-stats/src/utils"
)

func newTestServer() *APIServer {
	cfg := &models.MConfig{
		Name: "trade-stats-test",
		Host: "127.0.0.1",
		Port: 8080,
		Engine: models.MEngineConfig{
			MaxSymbolLength: 64,
			MaxBatchSize:    10000,
		},
	}
	log := logger.NewLogger(nil, "test")
	registry := engine.NewSymbolRegistry(cfg.Engine, log)
	sessions := utils.NewSessionTracker(log)
	return NewAPIServer(cfg, log, registry, nil, sessions)
}

func doRequest(s *APIServer, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestAddBatchEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/api/add_batch",
		`{"symbol":"AAPL","values":[3,3,3]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, float64(3), payload["count"])
}

func TestAddBatchEndpointErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name          string
		body          string
		expectedCode  int
		expectedError string
	}{
		{
			name:          "malformed body",
			body:          `{"symbol":`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "BadRequest",
		},
		{
			name:          "empty symbol",
			body:          `{"symbol":"","values":[1]}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "InvalidSymbol",
		},
		{
			name:          "empty batch",
			body:          `{"symbol":"AAPL","values":[]}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "InvalidValue",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/add_batch", tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedError, decodeBody(t, rec)["error"])
		})
	}
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/api/add_batch",
		`{"symbol":"AAPL","values":[1,2,3,4]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/stats?symbol=AAPL&k=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.MStatsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, 1.0, res.Min)
	assert.Equal(t, 4.0, res.Max)
	assert.Equal(t, 2.5, res.Mean)
	assert.Equal(t, 2.5, res.Median)
	assert.Equal(t, 4.0, res.Last)
}

func TestStatsEndpointErrors(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/api/add_batch",
		`{"symbol":"AAPL","values":[1]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name          string
		target        string
		expectedCode  int
		expectedError string
	}{
		{
			name:          "unknown symbol",
			target:        "/api/stats?symbol=NOPE&k=5",
			expectedCode:  http.StatusNotFound,
			expectedError: "UnknownSymbol",
		},
		{
			name:          "unparseable k",
			target:        "/api/stats?symbol=AAPL&k=abc",
			expectedCode:  http.StatusBadRequest,
			expectedError: "InvalidWindowSize",
		},
		{
			name:          "missing k",
			target:        "/api/stats?symbol=AAPL",
			expectedCode:  http.StatusBadRequest,
			expectedError: "InvalidWindowSize",
		},
		{
			name:          "zero k",
			target:        "/api/stats?symbol=AAPL&k=0",
			expectedCode:  http.StatusBadRequest,
			expectedError: "InvalidWindowSize",
		},
		{
			name:          "negative k",
			target:        "/api/stats?symbol=AAPL&k=-1",
			expectedCode:  http.StatusBadRequest,
			expectedError: "InvalidWindowSize",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tc.target, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedError, decodeBody(t, rec)["error"])
		})
	}
}

func TestSessionEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodGet, "/api/session?symbol=AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "AAPL", payload["symbol"])
	assert.Contains(t, payload, "open")
	assert.Contains(t, payload, "trading_day")

	rec = doRequest(s, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/api/add_batch",
		`{"symbol":"AAPL","values":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, false, payload["journal"])

	engineStatus, ok := payload["engine"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), engineStatus["symbols"])
	assert.Equal(t, float64(2), engineStatus["total_observations"])
}
