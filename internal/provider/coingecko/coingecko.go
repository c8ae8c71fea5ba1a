package coingecko

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/core"
)

const baseURL = "https://api.coingecko.com/api/v3"

// CoinGecko implements the provider interface against the CoinGecko batch
// markets endpoint. It is the primary source and carries the richest fields
// (market cap, volume, 24h change).
type CoinGecko struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New creates a new CoinGecko provider.
func New(apiKey string) *CoinGecko {
	return &CoinGecko{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// NewWithBaseURL creates a CoinGecko provider with custom base URL (for testing).
func NewWithBaseURL(apiKey, url string) *CoinGecko {
	c := New(apiKey)
	c.baseURL = url
	return c
}

func (c *CoinGecko) Name() string {
	return "coingecko"
}

// marketRow is one element of the /coins/markets response array.
type marketRow struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	CurrentPrice float64  `json:"current_price"`
	Change24h    *float64 `json:"price_change_percentage_24h"`
	MarketCap    float64  `json:"market_cap"`
	TotalVolume  float64  `json:"total_volume"`
}

// FetchQuotes fetches all requested assets in one batch request.
func (c *CoinGecko) FetchQuotes(ids []string) (map[string]core.AssetQuote, error) {
	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&ids=%s&order=market_cap_desc&per_page=100&page=1&sparkline=false&price_change_percentage=24h",
		c.baseURL, strings.Join(ids, ","))

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rows []marketRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	now := time.Now()
	quotes := make(map[string]core.AssetQuote, len(rows))
	for _, row := range rows {
		q := core.AssetQuote{
			ID:           row.ID,
			Name:         row.Name,
			Symbol:       strings.ToUpper(row.Symbol),
			PriceUSD:     row.CurrentPrice,
			MarketCapUSD: row.MarketCap,
			VolumeUSD:    row.TotalVolume,
			LastUpdated:  now,
			Source:       c.Name(),
		}
		if row.Change24h != nil {
			q.Change24hPct = *row.Change24h
		}
		if q, ok := catalog.Normalize(q); ok {
			quotes[q.ID] = q
		}
	}

	return quotes, nil
}
