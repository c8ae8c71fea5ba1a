package coincap

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/core"
)

const baseURL = "https://api.coincap.io/v2"

// CoinCap implements the provider interface against the CoinCap assets
// endpoint. It is the last resort in the chain; every numeric field arrives
// string-encoded and must be parsed explicitly.
type CoinCap struct {
	client  *http.Client
	baseURL string
}

// New creates a new CoinCap provider.
func New() *CoinCap {
	return &CoinCap{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates a CoinCap provider with custom base URL (for testing).
func NewWithBaseURL(url string) *CoinCap {
	c := New()
	c.baseURL = url
	return c
}

func (c *CoinCap) Name() string {
	return "coincap"
}

// assetRow is one element of the assets response; numerics are strings.
type assetRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	PriceUSD     string `json:"priceUsd"`
	ChangePct24h string `json:"changePercent24Hr"`
	MarketCapUSD string `json:"marketCapUsd"`
	VolumeUSD24h string `json:"volumeUsd24Hr"`
}

type assetsResponse struct {
	Data []assetRow `json:"data"`
}

// parseFloat parses a string-encoded numeric field, treating empty or
// malformed values as 0 rather than failing the whole asset.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// FetchQuotes fetches all requested assets in one batch request.
func (c *CoinCap) FetchQuotes(ids []string) (map[string]core.AssetQuote, error) {
	url := fmt.Sprintf("%s/assets?ids=%s", c.baseURL, strings.Join(ids, ","))

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result assetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	now := time.Now()
	quotes := make(map[string]core.AssetQuote, len(result.Data))
	for _, row := range result.Data {
		q := core.AssetQuote{
			ID:           strings.ToLower(row.ID),
			Name:         row.Name,
			Symbol:       row.Symbol,
			PriceUSD:     parseFloat(row.PriceUSD),
			Change24hPct: parseFloat(row.ChangePct24h),
			MarketCapUSD: parseFloat(row.MarketCapUSD),
			VolumeUSD:    parseFloat(row.VolumeUSD24h),
			LastUpdated:  now,
			Source:       c.Name(),
		}
		if q, ok := catalog.Normalize(q); ok {
			quotes[q.ID] = q
		}
	}

	return quotes, nil
}
