package kernel

import (
	"github.com/shopspring/decimal"
)

// CurrencyScale is the number of fractional digits kept when an amount is
// persisted or shown to a customer.
const CurrencyScale = 2

// RoundToCurrency rounds an amount half away from zero to currency precision.
// Menu pricing never rounds; orders round unit prices when lines are attached.
func RoundToCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyScale)
}

// ToMinorUnits converts an amount to integer minor units (cents) as expected by
// payment processors.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(CurrencyScale).Round(0).IntPart()
}

// MustDecimal parses a literal amount and panics on malformed input. It is meant
// for constants and tests.
func MustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
