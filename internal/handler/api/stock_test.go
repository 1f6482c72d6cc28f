package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"
	"StockScout/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	info *models.StockInfo
	err  error
}

func (s *stubProvider) GetStockInfo(_ context.Context, _ string) (*models.StockInfo, error) {
	return s.info, s.err
}

type stubAgent struct {
	answer      string
	err         error
	mode        string
	sessionID   string
	lastQuery   string
	invocations int
}

func (s *stubAgent) Run(_ context.Context, mode, sessionID, query string) (string, error) {
	s.invocations++
	s.mode, s.sessionID, s.lastQuery = mode, sessionID, query
	return s.answer, s.err
}

func newTestServer(agg StockInfoProvider, agent AgentRunner) *echo.Echo {
	e := echo.New()
	NewStockEchoHandler(logger.Nop(), agg, agent).RegisterRoutes(e)
	return e
}

// All endpoints answer HTTP 200 with the effective status in the body.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStockInfoSuccess(t *testing.T) {
	agg := &stubProvider{info: &models.StockInfo{
		Ticker:       "TSLA",
		CurrentPrice: 300,
		ChangePct:    -3.23,
		Timeframe:    "1 day",
		TopHeadline:  "Tesla recalls vehicles",
		Analysis:     "TSLA is down 3.23% over the period; top story: Tesla recalls vehicles",
	}}
	e := newTestServer(agg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock-info?query=Why+did+Tesla+stock+drop+today%3F", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusOK), body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "TSLA", data["ticker"])
	assert.Equal(t, -3.23, data["change_pct"])
	assert.Equal(t, "1 day", data["timeframe"])
}

func TestStockInfoMissingQuery(t *testing.T) {
	e := newTestServer(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock-info", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestStockInfoErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unresolved ticker", &drepo.UnresolvedTickerError{Query: "zzq"}, http.StatusNotFound},
		{"no data", &drepo.NoDataError{Symbol: "XXXX"}, http.StatusNotFound},
		{"insufficient data", &drepo.InsufficientDataError{Symbol: "TSLA", Days: 7, Got: 3}, http.StatusUnprocessableEntity},
		{"provider down", &drepo.TransportError{Provider: "marketstack", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&stubProvider{err: tt.err}, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/stock-info?query=tesla+today", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			body := decodeBody(t, rec)
			assert.Equal(t, float64(tt.status), body["status"])
		})
	}
}

func TestAskSuccess(t *testing.T) {
	agent := &stubAgent{answer: "TSLA fell 3.23% today."}
	e := newTestServer(&stubProvider{}, agent)

	payload := `{"query":"Why did Tesla stock drop today?","session_id":"abc","mode":"schema"}`
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusOK), body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "schema", data["mode"])
	assert.Equal(t, "abc", data["session_id"])
	assert.Equal(t, "TSLA fell 3.23% today.", data["answer"])
	assert.Equal(t, "Why did Tesla stock drop today?", agent.lastQuery)
}

func TestAskDefaults(t *testing.T) {
	agent := &stubAgent{answer: "ok"}
	e := newTestServer(&stubProvider{}, agent)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"query":"tesla today"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	decodeBody(t, rec)
	assert.Equal(t, "tool", agent.mode)
	assert.Equal(t, "default", agent.sessionID)
}

func TestAskInvalidMode(t *testing.T) {
	agent := &stubAgent{}
	e := newTestServer(&stubProvider{}, agent)

	payload := `{"query":"tesla today","mode":"oracle"}`
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Zero(t, agent.invocations)
}

func TestAskWithoutAgent(t *testing.T) {
	e := newTestServer(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"query":"tesla today"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["status"])
}

func TestHealth(t *testing.T) {
	e := newTestServer(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusOK), body["status"])
}
