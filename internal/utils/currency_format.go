package utils

import (
	"github.com/shopspring/decimal"
)

// PesoPrecision is the number of centavo digits kept for payment and sale amounts.
const PesoPrecision = 2

// FormatPeso formats an amount to centavo precision.
// Example: 15000 returns "15000.00", 2499999.999 returns "2500000.00"
func FormatPeso(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, PesoPrecision)
}

// FormatWithPrecision formats an amount with the given precision, keeping
// trailing zeros.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
