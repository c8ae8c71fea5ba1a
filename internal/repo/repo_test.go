package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/usmankz/coinsight/internal/core"
)

func snapshot(price float64) core.Snapshot {
	return core.Snapshot{
		Quotes: map[string]core.AssetQuote{
			"bitcoin": {ID: "bitcoin", Symbol: "BTC", PriceUSD: price},
		},
		Rates:     core.RateTable{"usd": 1.0, "eur": 0.92},
		Source:    "coingecko",
		FetchedAt: time.Now(),
	}
}

func TestRepository_NotReadyUntilFirstReplace(t *testing.T) {
	r := New()
	assert.False(t, r.Ready())

	r.Replace(snapshot(41250.50))
	assert.True(t, r.Ready())
}

func TestRepository_ReplaceIsWholesale(t *testing.T) {
	r := New()
	first := snapshot(41250.50)
	first.Quotes["ethereum"] = core.AssetQuote{ID: "ethereum", Symbol: "ETH", PriceUSD: 2250.75}
	r.Replace(first)

	// Second snapshot lacks ethereum; it must not survive the swap.
	r.Replace(snapshot(42000))

	_, ok := r.Quote("ethereum")
	assert.False(t, ok, "replace must never merge with the prior snapshot")

	btc, ok := r.Quote("bitcoin")
	assert.True(t, ok)
	assert.Equal(t, 42000.0, btc.PriceUSD)
}

func TestRepository_SnapshotIsCopy(t *testing.T) {
	r := New()
	r.Replace(snapshot(41250.50))

	s := r.Snapshot()
	s.Quotes["bitcoin"] = core.AssetQuote{ID: "bitcoin", PriceUSD: 1}
	s.Rates["eur"] = 99

	btc, _ := r.Quote("bitcoin")
	assert.Equal(t, 41250.50, btc.PriceUSD, "mutating a read snapshot must not affect the repository")
	assert.Equal(t, 0.92, r.Rates()["eur"])
}
