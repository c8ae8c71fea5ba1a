package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "coinsight",
	Short: "coinsight - crypto ROI calculator and price comparison service",
	Long: `coinsight serves compound-growth ROI projections, price conversions, and
multi-asset comparisons over live market data, with automatic fallback
across providers and static data when every source is down.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
