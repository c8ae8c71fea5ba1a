package provider

import (
	"github.com/usmankz/coinsight/internal/core"
	"go.uber.org/zap"
)

// Chain tries an ordered list of providers until one succeeds.
//
// Attempts are strictly sequential and independent: a provider's result is
// never merged with another's, and there is no retry within a provider before
// advancing. The first provider whose response parses returns the whole
// result, even when it recognized zero of the requested assets (a thin but
// valid snapshot). Only when every provider fails does FetchQuotes return
// core.ErrAllProvidersFailed, so the caller can substitute static data.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
	onFailure func(provider string)
}

// NewChain creates a fetcher over the given providers, tried in order.
func NewChain(providers []Provider, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{providers: providers, logger: logger}
}

// SetFailureHook registers a callback invoked with the provider name on each
// failed attempt, used for failure accounting.
func (c *Chain) SetFailureHook(fn func(provider string)) {
	c.onFailure = fn
}

// FetchQuotes fetches quotes for the given ids with automatic fallback.
func (c *Chain) FetchQuotes(ids []string) (map[string]core.AssetQuote, string, error) {
	var lastErr error
	for _, p := range c.providers {
		quotes, err := p.FetchQuotes(ids)
		if err != nil {
			c.logger.Warn("provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			if c.onFailure != nil {
				c.onFailure(p.Name())
			}
			lastErr = err
			continue
		}
		c.logger.Debug("provider succeeded",
			zap.String("provider", p.Name()),
			zap.Int("assets", len(quotes)),
		)
		return quotes, p.Name(), nil
	}
	return nil, "", core.WrapError(core.ErrAllProvidersFailed, lastErr)
}
