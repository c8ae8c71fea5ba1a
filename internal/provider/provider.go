package provider

import (
	"github.com/usmankz/coinsight/internal/core"
)

// Provider defines the interface for market data sources.
type Provider interface {
	// Name returns the provider identifier (e.g., "coingecko", "coincap")
	Name() string

	// FetchQuotes fetches current quotes for the given canonical asset ids in
	// a single batch request. Implementations normalize their own response
	// schema into core.AssetQuote keyed by canonical id; asset keys outside
	// the requested set are dropped silently.
	FetchQuotes(ids []string) (map[string]core.AssetQuote, error)
}
