// Package rates fetches the USD-based exchange rate table. Unlike the quote
// fetcher there is no provider chain here: one source, and any failure
// substitutes the static fallback table.
package rates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/core"
	"go.uber.org/zap"
)

const baseURL = "https://api.exchangerate-api.com/v4/latest/USD"

// Fetcher fetches exchange rates from a single source with static fallback.
type Fetcher struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// New creates a new rate fetcher.
func New(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// NewWithBaseURL creates a rate fetcher with custom URL (for testing).
func NewWithBaseURL(url string, logger *zap.Logger) *Fetcher {
	f := New(logger)
	f.baseURL = url
	return f
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Fetch returns the current rate table. It never fails: on any transport,
// status, or decode error the static fallback table is returned along with
// core.ErrRateFetchFailed so the caller can mark the snapshot stale.
//
// The returned table always has usd == 1.0 exactly and a value for every
// supported currency code, filled from the static table when the source
// omits one.
func (f *Fetcher) Fetch() (core.RateTable, error) {
	table, err := f.fetchLive()
	if err != nil {
		f.logger.Warn("rate fetch failed, using static rates", zap.Error(err))
		return catalog.FallbackRates(), core.WrapError(core.ErrRateFetchFailed, err)
	}
	return table, nil
}

func (f *Fetcher) fetchLive() (core.RateTable, error) {
	req, err := http.NewRequest("GET", f.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Rates) == 0 {
		return nil, fmt.Errorf("empty rate table")
	}

	table := make(core.RateTable, len(result.Rates))
	for code, rate := range result.Rates {
		table[strings.ToLower(code)] = rate
	}

	// USD is the base and must be exact regardless of what the source says.
	table["usd"] = 1.0

	// Guarantee a value for every currency the calculator exposes; the
	// source omits some regional codes (PKR being the motivating case).
	for _, c := range catalog.Currencies() {
		if _, ok := table[c.Code]; !ok {
			table[c.Code] = c.FallbackRate
		}
	}

	return table, nil
}
