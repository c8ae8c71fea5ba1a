// Package catalog holds the static asset configuration table. It is the single
// source for which asset ids exist, their assumed annual growth rates, display
// colors, and the fallback values used when every live provider fails.
package catalog

import (
	"time"

	"github.com/usmankz/coinsight/internal/core"
)

// Asset is one entry in the static asset table.
type Asset struct {
	ID              string
	Name            string
	Symbol          string
	AnnualGrowthPct float64
	Color           string
	FallbackPrice   float64
	FallbackChange  float64
}

// assets is the fixed tracked set, in display order. A quote for an id not in
// this table is discarded during normalization.
var assets = []Asset{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", AnnualGrowthPct: 65, Color: "#F7931A", FallbackPrice: 41250.50, FallbackChange: 2.5},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", AnnualGrowthPct: 55, Color: "#627EEA", FallbackPrice: 2250.75, FallbackChange: 1.8},
	{ID: "solana", Name: "Solana", Symbol: "SOL", AnnualGrowthPct: 120, Color: "#00FFA3", FallbackPrice: 95.30, FallbackChange: 5.2},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", AnnualGrowthPct: 35, Color: "#0033AD", FallbackPrice: 0.45, FallbackChange: -1.2},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", AnnualGrowthPct: 40, Color: "#E6007A", FallbackPrice: 6.85, FallbackChange: 0.5},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", AnnualGrowthPct: 25, Color: "#C2A633", FallbackPrice: 0.078, FallbackChange: 3.1},
}

var byID = func() map[string]Asset {
	m := make(map[string]Asset, len(assets))
	for _, a := range assets {
		m[a.ID] = a
	}
	return m
}()

// All returns the tracked assets in display order.
func All() []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

// IDs returns the tracked asset ids in display order.
func IDs() []string {
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	return ids
}

// Lookup returns the static entry for an asset id.
func Lookup(id string) (Asset, bool) {
	a, ok := byID[id]
	return a, ok
}

// AnnualGrowthPct returns the assumed annual growth rate for an asset id,
// defaulting to 50 for unknown ids.
func AnnualGrowthPct(id string) float64 {
	if a, ok := byID[id]; ok {
		return a.AnnualGrowthPct
	}
	return 50
}

// Color returns the display color for an asset id.
func Color(id string) string {
	if a, ok := byID[id]; ok {
		return a.Color
	}
	return "#0D6EFD"
}

// Normalize fills the static fields (name, symbol, growth, color) an asset
// quote carries regardless of which provider produced it. Quotes for ids not
// in the table are rejected.
func Normalize(q core.AssetQuote) (core.AssetQuote, bool) {
	a, ok := byID[q.ID]
	if !ok {
		return core.AssetQuote{}, false
	}
	if q.Name == "" {
		q.Name = a.Name
	}
	if q.Symbol == "" {
		q.Symbol = a.Symbol
	}
	q.AnnualGrowthPct = a.AnnualGrowthPct
	q.Color = a.Color
	return q, true
}

// FallbackQuotes returns the static quote set substituted when every live
// provider fails.
func FallbackQuotes(now time.Time) map[string]core.AssetQuote {
	out := make(map[string]core.AssetQuote, len(assets))
	for _, a := range assets {
		out[a.ID] = core.AssetQuote{
			ID:              a.ID,
			Name:            a.Name,
			Symbol:          a.Symbol,
			PriceUSD:        a.FallbackPrice,
			Change24hPct:    a.FallbackChange,
			AnnualGrowthPct: a.AnnualGrowthPct,
			Color:           a.Color,
			LastUpdated:     now,
			Source:          "fallback",
		}
	}
	return out
}
