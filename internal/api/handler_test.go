// internal/api/handler_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usmankz/coinsight/internal/core"
	"github.com/usmankz/coinsight/internal/repo"
	"go.uber.org/zap"
)

type fakeRefresher struct {
	calls int
}

func (f *fakeRefresher) RunCycle() { f.calls++ }

func testServer(t *testing.T, repository *repo.QuoteRepository, refresher Refresher) *Server {
	t.Helper()
	h := NewHandler(repository, refresher, nil)
	return NewServer(Config{Host: "127.0.0.1", Port: 0}, h, nil, zap.NewNop())
}

func readyRepo() *repo.QuoteRepository {
	r := repo.New()
	r.Replace(core.Snapshot{
		Quotes: map[string]core.AssetQuote{
			"bitcoin": {
				ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC",
				PriceUSD: 41250.50, Change24hPct: 2.5,
				AnnualGrowthPct: 65, Color: "#F7931A",
			},
		},
		Rates:     core.RateTable{"usd": 1.0, "eur": 0.92},
		Source:    "coingecko",
		FetchedAt: time.Now(),
	})
	return r
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestQuotes_NotReady(t *testing.T) {
	srv := testServer(t, repo.New(), nil)

	rec := doRequest(t, srv, "GET", "/api/v1/quotes", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DATA_NOT_READY", resp.Error.Code)
}

func TestQuotes(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "GET", "/api/v1/quotes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp struct {
		Data struct {
			Source string                     `json:"source"`
			Stale  bool                       `json:"stale"`
			Quotes map[string]core.AssetQuote `json:"quotes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "coingecko", resp.Data.Source)
	assert.Equal(t, 41250.50, resp.Data.Quotes["bitcoin"].PriceUSD)
}

func TestROI(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "POST", "/api/v1/roi",
		`{"asset_id":"bitcoin","amount":1000,"period_days":365,"currency":"usd"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data core.ProjectionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 1650.0, resp.Data.ProjectedValue, 1e-9)
	assert.InDelta(t, 65.0, resp.Data.ROIPct, 1e-9)
}

func TestROI_StringNumbersAccepted(t *testing.T) {
	// Form values arrive as strings; the handler tolerates both encodings.
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "POST", "/api/v1/roi",
		`{"asset_id":"bitcoin","amount":"1000","period_days":"365","currency":"USD"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestROI_Validation(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"asset_id":"bitcoin","amount":0,"period_days":365,"currency":"usd"}`},
		{"missing amount", `{"asset_id":"bitcoin","period_days":365,"currency":"usd"}`},
		{"non-numeric amount", `{"asset_id":"bitcoin","amount":"abc","period_days":365,"currency":"usd"}`},
		{"garbage body", `{{{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, srv, "POST", "/api/v1/roi", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
		})
	}
}

func TestConvert(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "POST", "/api/v1/convert",
		`{"asset_id":"bitcoin","amount":0.5,"currency":"eur"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data core.ConversionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 20625.25, resp.Data.ValueUSD, 1e-9)
	assert.InDelta(t, 18975.23, resp.Data.Value, 1e-9)
}

func TestConvert_MissingQuote(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "POST", "/api/v1/convert",
		`{"asset_id":"solana","amount":1,"currency":"usd"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCompare(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "POST", "/api/v1/compare",
		`{"amount":1000,"period_days":365,"assets":["bitcoin","solana"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []core.ComparisonEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1, "missing assets are skipped, not errors")
	assert.Equal(t, "BTC", resp.Data[0].Symbol)
}

func TestCompareChart(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "GET", "/api/v1/compare/chart.png?amount=1000&period_days=365&assets=bitcoin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestRefresh(t *testing.T) {
	refresher := &fakeRefresher{}
	srv := testServer(t, readyRepo(), refresher)

	rec := doRequest(t, srv, "POST", "/api/v1/refresh", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, refresher.calls)
}

func TestHealth(t *testing.T) {
	srv := testServer(t, readyRepo(), nil)

	rec := doRequest(t, srv, "GET", "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Status string `json:"status"`
			Ready  bool   `json:"ready"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Data.Status)
	assert.True(t, resp.Data.Ready)
}
