// Package scheduler drives the periodic refresh cycle: fetch quotes through
// the provider chain, fetch rates, install the snapshot, notify listeners.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/core"
	"github.com/usmankz/coinsight/internal/engine"
	"github.com/usmankz/coinsight/internal/metrics"
	"github.com/usmankz/coinsight/internal/notify"
	"github.com/usmankz/coinsight/internal/provider"
	"github.com/usmankz/coinsight/internal/rates"
	"github.com/usmankz/coinsight/internal/repo"
	"go.uber.org/zap"
)

// DefaultInterval is the refresh cadence when none is configured.
const DefaultInterval = 60 * time.Second

// Scheduler owns the refresh loop. It has two states, idle and fetching;
// overlapping triggers while a cycle is in flight are no-ops (single-flight),
// and the fetching state is always released when a cycle completes, whether
// it pulled live data or fell back to static values.
type Scheduler struct {
	chain      *provider.Chain
	rateFetch  *rates.Fetcher
	repository *repo.QuoteRepository
	listeners  *notify.Registry
	metrics    *metrics.Registry
	logger     *zap.Logger
	interval   time.Duration

	mu        sync.Mutex
	running   bool
	fetching  bool
	firstDone bool
	cancel    context.CancelFunc
}

// New creates a scheduler. listeners and reg may be nil.
func New(chain *provider.Chain, rateFetch *rates.Fetcher, repository *repo.QuoteRepository, listeners *notify.Registry, reg *metrics.Registry, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if listeners == nil {
		listeners = notify.NewRegistry()
	}
	return &Scheduler{
		chain:      chain,
		rateFetch:  rateFetch,
		repository: repository,
		listeners:  listeners,
		metrics:    reg,
		logger:     logger,
		interval:   DefaultInterval,
	}
}

// SetInterval sets the refresh interval.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.interval = d
	}
}

// Start runs one cycle immediately, then refreshes on the fixed interval
// until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	s.running = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	interval := s.interval
	s.mu.Unlock()

	s.logger.Info("scheduler starting",
		zap.Duration("interval", interval),
		zap.Strings("assets", catalog.IDs()),
	)

	// Initial run
	s.RunCycle()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down")
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			s.RunCycle()
		}
	}
}

// Stop stops the refresh loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// RunCycle executes one refresh cycle. Safe to call from any goroutine; a
// call that arrives while another cycle is in flight returns immediately.
func (s *Scheduler) RunCycle() {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		s.logger.Debug("refresh already in flight, skipping")
		return
	}
	s.fetching = true
	s.mu.Unlock()

	start := time.Now()
	snapshot := s.fetchSnapshot()

	s.repository.Replace(snapshot)

	if s.metrics != nil {
		s.metrics.RecordFetchCycle(time.Since(start).Seconds())
		s.metrics.SetStale(snapshot.Stale)
	}

	for name, err := range s.listeners.NotifyAll(snapshot) {
		s.logger.Warn("listener failed",
			zap.String("listener", name),
			zap.Error(err),
		)
	}

	s.mu.Lock()
	first := !s.firstDone
	s.firstDone = true
	s.fetching = false
	s.mu.Unlock()

	if first {
		s.runDefaultCalculation(snapshot)
	}
}

// fetchSnapshot runs the provider chain and the rate fetch, substituting
// static data where a source failed. It never returns an error: after any
// cycle the repository holds a valid snapshot.
func (s *Scheduler) fetchSnapshot() core.Snapshot {
	now := time.Now()

	quotes, source, err := s.chain.FetchQuotes(catalog.IDs())
	stale := false
	if err != nil {
		s.logger.Warn("all providers failed, using static quotes", zap.Error(err))
		quotes = catalog.FallbackQuotes(now)
		source = "fallback"
		stale = true
	}

	table, rateErr := s.rateFetch.Fetch()
	if rateErr != nil {
		// Non-blocking: the static table is already in place.
		stale = true
		if s.metrics != nil {
			s.metrics.RecordRateFallback()
		}
	}

	if s.metrics != nil && err == nil {
		s.metrics.RecordProviderUsed(source)
	}

	s.logger.Info("refresh cycle complete",
		zap.String("source", source),
		zap.Int("assets", len(quotes)),
		zap.Bool("stale", stale),
	)

	return core.Snapshot{
		Quotes:    quotes,
		Rates:     table,
		Source:    source,
		Stale:     stale,
		FetchedAt: now,
	}
}

// runDefaultCalculation computes one projection as soon as data first
// becomes available, so the result panel is never empty.
func (s *Scheduler) runDefaultCalculation(snapshot core.Snapshot) {
	result, err := engine.CalculateROI(snapshot, core.ProjectionInput{
		AssetID:    "bitcoin",
		Amount:     1000,
		PeriodDays: 365,
		Currency:   "usd",
	})
	if err != nil {
		s.logger.Warn("default calculation failed", zap.Error(err))
		return
	}
	s.logger.Info("default calculation",
		zap.String("asset", result.AssetID),
		zap.Float64("projected_value", result.ProjectedValue),
		zap.Float64("roi_pct", result.ROIPct),
	)
}
