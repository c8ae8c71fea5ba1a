package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/config"
	"github.com/usmankz/coinsight/internal/core"
	"github.com/usmankz/coinsight/internal/logger"
	"github.com/usmankz/coinsight/internal/metrics"
	"github.com/usmankz/coinsight/internal/provider"
	"github.com/usmankz/coinsight/internal/provider/coincap"
	"github.com/usmankz/coinsight/internal/provider/coingecko"
	"github.com/usmankz/coinsight/internal/provider/cryptocompare"
	"github.com/usmankz/coinsight/internal/rates"
	"go.uber.org/zap"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one fetch cycle and print the snapshot as JSON",
	Long: `Runs the provider chain and the exchange rate fetch exactly once and
prints the resulting snapshot, which helps when debugging provider outages
and schema changes.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// buildChain assembles the provider chain in configured order.
func buildChain(cfg *config.Config, log *zap.Logger, reg *metrics.Registry) *provider.Chain {
	providers := make([]provider.Provider, 0, len(cfg.Providers.Order))
	for _, name := range cfg.Providers.Order {
		switch name {
		case "coingecko":
			if cfg.Providers.CoinGeckoURL != "" {
				providers = append(providers, coingecko.NewWithBaseURL(cfg.Providers.CoinGeckoAPIKey, cfg.Providers.CoinGeckoURL))
			} else {
				providers = append(providers, coingecko.New(cfg.Providers.CoinGeckoAPIKey))
			}
		case "cryptocompare":
			if cfg.Providers.CryptoCompareURL != "" {
				providers = append(providers, cryptocompare.NewWithBaseURL(cfg.Providers.CryptoCompareURL))
			} else {
				providers = append(providers, cryptocompare.New())
			}
		case "coincap":
			if cfg.Providers.CoinCapURL != "" {
				providers = append(providers, coincap.NewWithBaseURL(cfg.Providers.CoinCapURL))
			} else {
				providers = append(providers, coincap.New())
			}
		}
	}

	chain := provider.NewChain(providers, log)
	if reg != nil {
		chain.SetFailureHook(reg.RecordProviderFailure)
	}
	return chain
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg := config.Defaults()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	chain := buildChain(cfg, log, nil)
	quotes, source, err := chain.FetchQuotes(catalog.IDs())
	if err != nil {
		log.Warn("all providers failed, printing static fallback", zap.Error(err))
		quotes = catalog.FallbackQuotes(time.Now())
		source = "fallback"
	}

	rateFetch := rates.New(log)
	if cfg.Rates.URL != "" {
		rateFetch = rates.NewWithBaseURL(cfg.Rates.URL, log)
	}
	table, rateErr := rateFetch.Fetch()
	if rateErr != nil {
		log.Warn("rate fetch fell back to static table", zap.Error(rateErr))
	}

	snapshot := core.Snapshot{
		Quotes:    quotes,
		Rates:     table,
		Source:    source,
		Stale:     err != nil || rateErr != nil,
		FetchedAt: time.Now(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}
