// Package repo holds the current market snapshot. The snapshot is replaced
// wholesale on every completed fetch cycle and never mutated in place, so
// readers always see either the previous complete snapshot or the new one.
package repo

import (
	"sync"

	"github.com/usmankz/coinsight/internal/core"
)

// QuoteRepository is the owned, injected home of the latest snapshot. It
// starts empty; Ready reports false until the first cycle completes.
type QuoteRepository struct {
	mu       sync.RWMutex
	snapshot core.Snapshot
	ready    bool
}

// New creates an empty repository.
func New() *QuoteRepository {
	return &QuoteRepository{}
}

// Replace atomically swaps in a new snapshot.
func (r *QuoteRepository) Replace(s core.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = s
	r.ready = true
}

// Ready reports whether at least one fetch cycle has completed.
func (r *QuoteRepository) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// Snapshot returns a copy of the current snapshot. The quote map and rate
// table are copied so callers cannot mutate repository state.
func (r *QuoteRepository) Snapshot() core.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.snapshot
	out.Quotes = make(map[string]core.AssetQuote, len(r.snapshot.Quotes))
	for id, q := range r.snapshot.Quotes {
		out.Quotes[id] = q
	}
	out.Rates = make(core.RateTable, len(r.snapshot.Rates))
	for code, rate := range r.snapshot.Rates {
		out.Rates[code] = rate
	}
	return out
}

// Quote returns the current quote for one asset id.
func (r *QuoteRepository) Quote(id string) (core.AssetQuote, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.snapshot.Quotes[id]
	return q, ok
}

// Rates returns a copy of the current rate table.
func (r *QuoteRepository) Rates() core.RateTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(core.RateTable, len(r.snapshot.Rates))
	for code, rate := range r.snapshot.Rates {
		out[code] = rate
	}
	return out
}
