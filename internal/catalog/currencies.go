package catalog

import "github.com/usmankz/coinsight/internal/core"

// Currency is one supported target currency with its display symbol and the
// static USD-based rate used when the live rate source fails or omits it.
type Currency struct {
	Code         string
	Symbol       string
	FallbackRate float64
}

var currencies = []Currency{
	{Code: "usd", Symbol: "$", FallbackRate: 1},
	{Code: "pkr", Symbol: "Rs ", FallbackRate: 277.50},
	{Code: "eur", Symbol: "€", FallbackRate: 0.92},
	{Code: "gbp", Symbol: "£", FallbackRate: 0.79},
	{Code: "inr", Symbol: "₹", FallbackRate: 83.20},
	{Code: "aud", Symbol: "A$", FallbackRate: 1.52},
	{Code: "cad", Symbol: "C$", FallbackRate: 1.35},
	{Code: "jpy", Symbol: "¥", FallbackRate: 149.50},
	{Code: "cny", Symbol: "¥", FallbackRate: 7.30},
}

// Currencies returns the supported currency set in display order.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// CurrencyCodes returns the supported lowercase codes in display order.
func CurrencyCodes() []string {
	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.Code
	}
	return codes
}

// CurrencySymbol returns the display symbol for a currency code, defaulting
// to "$".
func CurrencySymbol(code string) string {
	for _, c := range currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return "$"
}

// FallbackRates returns the static rate table substituted when the live rate
// source fails entirely.
func FallbackRates() core.RateTable {
	t := make(core.RateTable, len(currencies))
	for _, c := range currencies {
		t[c.Code] = c.FallbackRate
	}
	return t
}
