package core

import "time"

// AssetQuote is the canonical market snapshot for one tracked asset.
// Every provider response is normalized into this shape.
type AssetQuote struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Symbol          string    `json:"symbol"`
	PriceUSD        float64   `json:"price_usd"`
	Change24hPct    float64   `json:"change_24h_pct"`
	MarketCapUSD    float64   `json:"market_cap_usd,omitempty"`
	VolumeUSD       float64   `json:"volume_usd,omitempty"`
	AnnualGrowthPct float64   `json:"annual_growth_pct"`
	Color           string    `json:"color"`
	LastUpdated     time.Time `json:"last_updated"`
	Source          string    `json:"source"`
}

// IsValid checks that the quote carries the required fields.
func (q AssetQuote) IsValid() bool {
	return q.ID != "" && q.PriceUSD > 0
}

// RateTable maps lowercase ISO currency codes to USD-based multipliers.
// "usd" is always exactly 1.0; lookups for unknown codes resolve to 1.0.
type RateTable map[string]float64

// Rate returns the multiplier for a currency code, falling back to 1.0
// (USD-equivalent) for unsupported codes.
func (t RateTable) Rate(code string) float64 {
	if r, ok := t[code]; ok && r > 0 {
		return r
	}
	return 1.0
}

// Snapshot is one complete fetch-cycle result: the full quote set plus the
// rate table. It is replaced wholesale on every cycle, never merged.
type Snapshot struct {
	Quotes    map[string]AssetQuote `json:"quotes"`
	Rates     RateTable             `json:"rates"`
	Source    string                `json:"source"`
	Stale     bool                  `json:"stale"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Quote looks up one asset by id.
func (s Snapshot) Quote(id string) (AssetQuote, bool) {
	q, ok := s.Quotes[id]
	return q, ok
}

// ProjectionInput is the user-supplied input to a single-asset ROI calculation.
// A nil AnnualGrowthPct means "use the asset's assumed growth rate".
type ProjectionInput struct {
	AssetID         string   `json:"asset_id"`
	Amount          float64  `json:"amount"`
	PeriodDays      int      `json:"period_days"`
	AnnualGrowthPct *float64 `json:"annual_growth_pct,omitempty"`
	Currency        string   `json:"currency"`
}

// ProjectionResult holds the computed ROI figures, denominated in the
// requested target currency.
type ProjectionResult struct {
	AssetID        string  `json:"asset_id"`
	Symbol         string  `json:"symbol"`
	Currency       string  `json:"currency"`
	Investment     float64 `json:"investment"`
	ProjectedValue float64 `json:"projected_value"`
	Profit         float64 `json:"profit"`
	ROIPct         float64 `json:"roi_pct"`
	Years          float64 `json:"years"`
}

// ConversionInput is the user-supplied input to an asset-to-fiat conversion.
type ConversionInput struct {
	AssetID  string  `json:"asset_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ConversionResult holds a computed asset-to-fiat conversion.
type ConversionResult struct {
	AssetID        string  `json:"asset_id"`
	Symbol         string  `json:"symbol"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	ValueUSD       float64 `json:"value_usd"`
	Value          float64 `json:"value"`
}

// ComparisonEntry pairs a full projection with the display triple the chart
// renderer consumes.
type ComparisonEntry struct {
	Projection ProjectionResult `json:"projection"`
	Symbol     string           `json:"symbol"`
	Value      float64          `json:"value"`
	Color      string           `json:"color"`
}

// TickerRow is one line of the rolling price ticker.
type TickerRow struct {
	Symbol       string  `json:"symbol"`
	PriceUSD     float64 `json:"price_usd"`
	Change24hPct float64 `json:"change_24h_pct"`
}
