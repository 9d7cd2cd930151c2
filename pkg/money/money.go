package money

import "github.com/shopspring/decimal"

// Round2 normalizes a computed amount to 2 decimal places. Every value that is
// persisted to a decimal(18,2) column goes through here so that accrual math
// never drifts from what the store can represent.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Equal reports whether two amounts are the same money value at 2-dp precision.
func Equal(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}

// IsZero reports whether an amount rounds to exactly zero.
func IsZero(v float64) bool {
	return decimal.NewFromFloat(v).Round(2).IsZero()
}
