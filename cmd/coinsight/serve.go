package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/usmankz/coinsight/internal/api"
	"github.com/usmankz/coinsight/internal/config"
	"github.com/usmankz/coinsight/internal/logger"
	"github.com/usmankz/coinsight/internal/metrics"
	"github.com/usmankz/coinsight/internal/notify"
	"github.com/usmankz/coinsight/internal/notify/webhook"
	"github.com/usmankz/coinsight/internal/rates"
	"github.com/usmankz/coinsight/internal/repo"
	"github.com/usmankz/coinsight/internal/scheduler"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the coinsight server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	// Load config
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting coinsight server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("refresh_interval", cfg.Refresh.Interval),
	)

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	chain := buildChain(cfg, log, reg)

	rateFetch := rates.New(log)
	if cfg.Rates.URL != "" {
		rateFetch = rates.NewWithBaseURL(cfg.Rates.URL, log)
	}

	repository := repo.New()

	listeners := notify.NewRegistry()
	if cfg.Webhook.Enabled {
		if err := listeners.Register(webhook.New(cfg.Webhook.URL, cfg.Webhook.Headers)); err != nil {
			return fmt.Errorf("registering webhook listener: %w", err)
		}
	}

	sched := scheduler.New(chain, rateFetch, repository, listeners, reg, log)
	sched.SetInterval(cfg.Refresh.Interval)

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MetricsPath: cfg.Metrics.Path,
	}, api.NewHandler(repository, sched, reg), reg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			log.Error("scheduler error", zap.Error(err))
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down coinsight server")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
