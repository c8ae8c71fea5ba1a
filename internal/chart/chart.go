// Package chart renders the comparison result as a PNG bar chart.
package chart

import (
	"errors"
	"fmt"

	"github.com/usmankz/coinsight/internal/core"
	"github.com/vicanso/go-charts/v2"
)

// Comparison renders projected values per asset as a bar chart. The entries
// keep their selection order.
func Comparison(entries []core.ComparisonEntry, amount float64, periodDays int) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New("no comparison entries to render")
	}

	labels := make([]string, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		labels[i] = e.Symbol
		values[i] = e.Value
	}

	title := fmt.Sprintf("Projected value of $%.0f after %d days", amount, periodDays)

	painter, err := charts.BarRender([][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
