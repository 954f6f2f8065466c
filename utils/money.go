package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Monetary amounts are carried as decimal.Decimal through the checkout
// math and only rounded here, at the display/persistence edge, so
// intermediate results never compound rounding error.

// Round2 rounds to cents using half-up rounding.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToCurrency converts an exact amount to the float64 stored in
// decimal(10,2) columns.
func ToCurrency(d decimal.Decimal) float64 {
	f, _ := Round2(d).Float64()
	return f
}

// FormatUSD renders an amount for receipts and logs, e.g. "$17.50".
func FormatUSD(d decimal.Decimal) string {
	return fmt.Sprintf("$%s", d.Round(2).StringFixed(2))
}
