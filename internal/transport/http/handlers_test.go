package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/calculation"
	"github.com/finkit/finproj/internal/config"
	"github.com/finkit/finproj/internal/locale"
)

func testServerConfig() config.ServerConfig {
	cfg := config.DefaultAppConfig().Server
	cfg.RateLimit.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	return NewServer(cfg, calculation.NewCalculationEngine(), locale.Default(), zap.NewNop(), "test")
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func firstDetail(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	details, ok := body["details"].([]interface{})
	require.True(t, ok, "details missing: %v", body)
	require.NotEmpty(t, details)
	return details[0].(map[string]interface{})
}

func firstResult(t *testing.T, body map[string]interface{}, kind string) map[string]interface{} {
	t.Helper()
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	return results[0].(map[string]interface{})[kind].(map[string]interface{})
}

func TestHealthAndInstruments(t *testing.T) {
	h := newTestServer(t, testServerConfig()).Handler()

	rec, body := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))

	rec, body = do(t, h, http.MethodGet, "/api/instruments", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["categories"], 8)
	assert.Len(t, body["return_types"], 3)
}

func TestCompound(t *testing.T) {
	h := newTestServer(t, testServerConfig()).Handler()

	t.Run("locale formatted amounts", func(t *testing.T) {
		rec, body := do(t, h, http.MethodPost, "/api/compound",
			`{"principal": "R$ 1.000,00", "monthly_contribution": 100, "rate": 0.01, "months": 2}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		compound := firstResult(t, body, "compound")
		regimes := compound["regimes"].([]interface{})
		require.Len(t, regimes, 1)
		assert.Equal(t, "1221.1", regimes[0].(map[string]interface{})["final_balance"])

		summary := body["summary"].([]interface{})
		assert.Equal(t, "R$ 1.221,10", summary[0].(map[string]interface{})["final_amount"])
		assert.Equal(t, "pt-BR", body["locale"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("request locale", func(t *testing.T) {
		rec, body := do(t, h, http.MethodPost, "/api/compound",
			`{"locale": "en-US", "principal": "$1,000.00", "monthly_contribution": "100", "rate": "1%", "months": 2}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		summary := body["summary"].([]interface{})
		assert.Equal(t, "$1,221.10", summary[0].(map[string]interface{})["final_amount"])
	})

	t.Run("three regimes", func(t *testing.T) {
		rec, body := do(t, h, http.MethodPost, "/api/compound",
			`{"principal": 1000, "rate": 0.12, "rate_unit": "annual", "inflation_rate": 0.045, "reference_rate": 0.1465, "years": 1}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		compound := firstResult(t, body, "compound")
		assert.Len(t, compound["regimes"], 3)
		assert.EqualValues(t, 12, compound["term_months"])
	})

	tests := []struct {
		name  string
		body  string
		code  string
		field string
	}{
		{"no active regime", `{"principal": 1000, "months": 12}`, "VALIDATION_FAILED", "rates"},
		{"missing principal", `{"rate": 0.01, "months": 12}`, "VALIDATION_FAILED", "principal"},
		{"bad rate unit", `{"principal": 1000, "rate": 0.01, "rate_unit": "daily", "months": 12}`, "VALIDATION_FAILED", "rate_unit"},
		{"unknown locale", `{"locale": "xx-XX", "principal": 1000, "rate": 0.01, "months": 12}`, "VALIDATION_FAILED", "locale"},
		{"unparseable amount", `{"principal": "mil reais", "rate": 0.01, "months": 12}`, "VALIDATION_FAILED", "principal"},
		{"no term", `{"principal": 1000, "rate": 0.01}`, "VALIDATION_FAILED", "term"},
		{"bad date", `{"principal": 1000, "rate": 0.01, "until": "31/12/2030"}`, "VALIDATION_FAILED", "until"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, "/api/compound", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, body["error_code"])
			assert.EqualValues(t, http.StatusBadRequest, body["status_code"])
			assert.Equal(t, tt.field, firstDetail(t, body)["field"])
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		rec, body := do(t, h, http.MethodPost, "/api/compound", `{"principal": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", body["error_code"])
	})
}

func TestRetirement(t *testing.T) {
	h := newTestServer(t, testServerConfig()).Handler()

	rec, body := do(t, h, http.MethodPost, "/api/retirement",
		`{"monthly_income": 8000, "income_percentage": "15%", "current_age": 30, "retirement_age": 60, "annual_return": 0.08, "current_patrimony": "20.000,00", "monthly_expenses": 6000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := firstResult(t, body, "retirement")
	assert.EqualValues(t, 360, res["months_to_retirement"])
	assert.Equal(t, "1200", res["monthly_contribution"])
	assert.Equal(t, "retirement", body["summary"].([]interface{})[0].(map[string]interface{})["subject"])

	rec, body = do(t, h, http.MethodPost, "/api/retirement",
		`{"monthly_income": 8000, "income_percentage": 0.15, "current_age": 40, "retirement_age": 30, "annual_return": 0.08}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "retirement_age", firstDetail(t, body)["field"])

	rec, body = do(t, h, http.MethodPost, "/api/retirement",
		`{"monthly_income": 8000, "income_percentage": 0.15, "current_age": 30, "retirement_age": 60, "annual_return": -1.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "annual_return", firstDetail(t, body)["field"])
}

func TestCompare(t *testing.T) {
	h := newTestServer(t, testServerConfig()).Handler()

	rec, body := do(t, h, http.MethodPost, "/api/fixed-income/compare", `{
		"a": {"category": "CDB", "return_type": "percent_of_reference", "rate": "120%", "holding_period_months": 24},
		"b": {"category": "LCA", "return_type": "percent_of_reference", "rate": 0.92, "holding_period_months": 24}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cmp := firstResult(t, body, "comparison")
	assert.Equal(t, "A", cmp["winner"])
	assert.Equal(t, "10000", cmp["base_amount"])
	a := cmp["a"].(map[string]interface{})
	b := cmp["b"].(map[string]interface{})
	assert.Equal(t, true, a["taxable"])
	assert.Equal(t, "0.175", a["withholding_rate"])
	assert.Equal(t, "0", b["withholding_tax_amount"])

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing rate", `{"a": {"category": "CDB", "return_type": "fixed", "holding_period_months": 12}, "b": {"category": "LCI", "return_type": "fixed", "rate": 0.1, "holding_period_months": 12}}`, "instrument A"},
		{"missing period", `{"a": {"category": "CDB", "return_type": "fixed", "rate": 0.1, "holding_period_months": 12}, "b": {"category": "LCI", "return_type": "fixed", "rate": 0.1}}`, "instrument B"},
		{"unknown category", `{"a": {"category": "CRI", "return_type": "fixed", "rate": 0.1, "holding_period_months": 12}, "b": {"category": "LCI", "return_type": "fixed", "rate": 0.1, "holding_period_months": 12}}`, "a.category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, "/api/fixed-income/compare", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
			assert.Equal(t, tt.field, firstDetail(t, body)["field"])
		})
	}
}

func TestRoutingErrors(t *testing.T) {
	h := newTestServer(t, testServerConfig()).Handler()

	rec, body := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body["error_code"])

	rec, body = do(t, h, http.MethodGet, "/api/compound", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body["error_code"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, testServerConfig()).Handler()

	do(t, h, http.MethodPost, "/api/compound", `{"principal": 1000, "rate": 0.01, "months": 12}`)
	do(t, h, http.MethodPost, "/api/compound", `{"principal": 1000, "months": 12}`)

	rec, _ := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()
	assert.Contains(t, text, `finproj_calculations_total{kind="compound",outcome="ok"} 1`)
	assert.Contains(t, text, `finproj_calculations_total{kind="compound",outcome="invalid"} 1`)
	assert.Contains(t, text, `finproj_http_request_duration_seconds_count{method="POST",route="/api/compound",status="200"} 1`)
}

func TestRateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	h := newTestServer(t, cfg).Handler()

	rec, _ := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["error_code"])
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestMaxBody(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxBodyBytes = 16
	h := newTestServer(t, cfg).Handler()

	rec, body := do(t, h, http.MethodPost, "/api/compound", `{"principal": 1000, "rate": 0.01, "months": 12}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", body["error_code"])
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec, body := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["error_code"])
}

func TestServerRunShutsDown(t *testing.T) {
	cfg := testServerConfig()
	cfg.Port = 0
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
