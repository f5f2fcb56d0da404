package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finkit/finproj/internal/calculation"
	"github.com/finkit/finproj/internal/config"
	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
	transport "github.com/finkit/finproj/internal/transport/http"
)

func TestAPIMatchesBatchRun(t *testing.T) {
	cfg := config.DefaultAppConfig().Server
	cfg.RateLimit.Enabled = false
	srv := transport.NewServer(cfg, calculation.NewCalculationEngine(), locale.Default(), zap.NewNop(), "integration")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	body := []byte(`{
		"a": {"category": "CDB", "return_type": "percent_of_reference", "rate": "110%", "holding_period_months": 24},
		"b": {"category": "LCA", "return_type": "percent_of_reference", "rate": "92%", "holding_period_months": 24}
	}`)
	resp, err := http.Post(ts.URL+"/api/fixed-income/compare", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Results []domain.ScenarioResult `json:"results"`
		Locale  string                  `json:"locale"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "pt-BR", got.Locale)

	want := runExample(t).Results[4].Comparison
	cmp := got.Results[0].Comparison
	require.NotNil(t, cmp)
	assert.Equal(t, want.Winner, cmp.Winner)
	assert.True(t, want.A.NetReturn.Equal(cmp.A.NetReturn), "A net %s != %s", cmp.A.NetReturn, want.A.NetReturn)
	assert.True(t, want.B.NetReturn.Equal(cmp.B.NetReturn), "B net %s != %s", cmp.B.NetReturn, want.B.NetReturn)
}
