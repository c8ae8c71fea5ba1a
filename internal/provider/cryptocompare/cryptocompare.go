package cryptocompare

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/core"
)

const baseURL = "https://min-api.cryptocompare.com/data"

// CryptoCompare implements the provider interface against the CryptoCompare
// pricemultifull endpoint. Its response is keyed by trading symbol rather
// than asset id, so it needs the catalog's per-asset symbol mapping both ways.
type CryptoCompare struct {
	client  *http.Client
	baseURL string
}

// New creates a new CryptoCompare provider.
func New() *CryptoCompare {
	return &CryptoCompare{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates a CryptoCompare provider with custom base URL (for testing).
func NewWithBaseURL(url string) *CryptoCompare {
	c := New()
	c.baseURL = url
	return c
}

func (c *CryptoCompare) Name() string {
	return "cryptocompare"
}

// rawQuote is the per-symbol USD block of the pricemultifull response.
type rawQuote struct {
	Price     float64 `json:"PRICE"`
	ChangePct float64 `json:"CHANGEPCT24HOUR"`
	MarketCap float64 `json:"MKTCAP"`
	Volume    float64 `json:"TOTALVOLUME24HTO"`
}

type multiFullResponse struct {
	Raw map[string]map[string]rawQuote `json:"RAW"`
}

// FetchQuotes fetches all requested assets in one batch request.
func (c *CryptoCompare) FetchQuotes(ids []string) (map[string]core.AssetQuote, error) {
	symbols := make([]string, 0, len(ids))
	symbolToID := make(map[string]string, len(ids))
	for _, id := range ids {
		a, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		symbols = append(symbols, a.Symbol)
		symbolToID[a.Symbol] = id
	}

	url := fmt.Sprintf("%s/pricemultifull?fsyms=%s&tsyms=USD", c.baseURL, strings.Join(symbols, ","))

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

	var result multiFullResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	now := time.Now()
	quotes := make(map[string]core.AssetQuote, len(symbols))
	for symbol, byCurrency := range result.Raw {
		id, ok := symbolToID[symbol]
		if !ok {
			continue
		}
		raw, ok := byCurrency["USD"]
		if !ok {
			continue
		}
		q := core.AssetQuote{
			ID:           id,
			Symbol:       symbol,
			PriceUSD:     raw.Price,
			Change24hPct: raw.ChangePct,
			MarketCapUSD: raw.MarketCap,
			VolumeUSD:    raw.Volume,
			LastUpdated:  now,
			Source:       c.Name(),
		}
		if q, ok := catalog.Normalize(q); ok {
			quotes[q.ID] = q
		}
	}

	return quotes, nil
}
