// Package engine implements the projection calculations. Every function is
// pure: same snapshot and input always produce the same result, and nothing
// here touches the network or the repository.
package engine

import (
	"math"

	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/core"
)

const daysPerYear = 365.0

// CalculateROI computes a single-asset compound-growth projection.
//
// All arithmetic runs in USD: the investment is converted to USD up front,
// grown with the annual rate over periodDays/365 years, and the displayed
// figures are converted back to the target currency once at the end.
func CalculateROI(s core.Snapshot, in core.ProjectionInput) (core.ProjectionResult, error) {
	if err := validateProjection(in); err != nil {
		return core.ProjectionResult{}, err
	}

	quote, ok := s.Quote(in.AssetID)
	if !ok {
		return core.ProjectionResult{}, core.ErrDataNotReady
	}

	growthPct := quote.AnnualGrowthPct
	if in.AnnualGrowthPct != nil {
		growthPct = *in.AnnualGrowthPct
	}

	rate := s.Rates.Rate(in.Currency)
	investmentUSD := in.Amount / rate
	years := float64(in.PeriodDays) / daysPerYear

	projectedUSD := investmentUSD * math.Pow(1+growthPct/100, years)
	profitUSD := projectedUSD - investmentUSD
	roiPct := profitUSD / investmentUSD * 100

	return core.ProjectionResult{
		AssetID:        in.AssetID,
		Symbol:         quote.Symbol,
		Currency:       in.Currency,
		Investment:     in.Amount,
		ProjectedValue: projectedUSD * rate,
		Profit:         profitUSD * rate,
		ROIPct:         roiPct,
		Years:          years,
	}, nil
}

// Convert computes an asset-amount to fiat conversion at the current price.
func Convert(s core.Snapshot, in core.ConversionInput) (core.ConversionResult, error) {
	if !isFinite(in.Amount) || in.Amount <= 0 {
		return core.ConversionResult{}, core.ValidationError("amount must be a positive number")
	}

	quote, ok := s.Quote(in.AssetID)
	if !ok {
		return core.ConversionResult{}, core.ErrDataNotReady
	}

	rate := s.Rates.Rate(in.Currency)
	valueUSD := in.Amount * quote.PriceUSD

	return core.ConversionResult{
		AssetID:        in.AssetID,
		Symbol:         quote.Symbol,
		Amount:         in.Amount,
		Currency:       in.Currency,
		CurrencySymbol: catalog.CurrencySymbol(in.Currency),
		ValueUSD:       valueUSD,
		Value:          valueUSD * rate,
	}, nil
}

// Compare runs the projection for each selected asset using its own assumed
// annual growth rate, always in USD. Assets missing from the snapshot are
// skipped; partial results are valid. The result order follows the selection
// order.
func Compare(s core.Snapshot, amount float64, periodDays int, assetIDs []string) ([]core.ComparisonEntry, error) {
	if !isFinite(amount) || amount <= 0 {
		return nil, core.ValidationError("amount must be a positive number")
	}
	if periodDays <= 0 {
		return nil, core.ValidationError("period must be a positive number of days")
	}
	if len(assetIDs) == 0 {
		return nil, core.ValidationError("select at least one asset")
	}

	entries := make([]core.ComparisonEntry, 0, len(assetIDs))
	for _, id := range assetIDs {
		quote, ok := s.Quote(id)
		if !ok {
			continue
		}

		proj, err := CalculateROI(s, core.ProjectionInput{
			AssetID:    id,
			Amount:     amount,
			PeriodDays: periodDays,
			Currency:   "usd",
		})
		if err != nil {
			continue
		}

		entries = append(entries, core.ComparisonEntry{
			Projection: proj,
			Symbol:     quote.Symbol,
			Value:      proj.ProjectedValue,
			Color:      quote.Color,
		})
	}
	return entries, nil
}

// Ticker derives the rolling ticker rows from a snapshot, in catalog order.
func Ticker(s core.Snapshot) []core.TickerRow {
	rows := make([]core.TickerRow, 0, len(s.Quotes))
	for _, id := range catalog.IDs() {
		q, ok := s.Quote(id)
		if !ok {
			continue
		}
		rows = append(rows, core.TickerRow{
			Symbol:       q.Symbol,
			PriceUSD:     q.PriceUSD,
			Change24hPct: q.Change24hPct,
		})
	}
	return rows
}

func validateProjection(in core.ProjectionInput) error {
	if !isFinite(in.Amount) || in.Amount <= 0 {
		return core.ValidationError("investment amount must be a positive number")
	}
	if in.PeriodDays <= 0 {
		return core.ValidationError("time period must be a positive number of days")
	}
	if in.AnnualGrowthPct != nil {
		if !isFinite(*in.AnnualGrowthPct) || *in.AnnualGrowthPct < -100 {
			return core.ValidationError("growth rate must be at least -100%")
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
