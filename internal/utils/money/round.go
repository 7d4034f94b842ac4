package money

import "github.com/shopspring/decimal"

// Quantize rounds an amount to 2 decimal places, half up. Every amount the engine
// emits on a payslip line goes through this.
func Quantize(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// NonNegative floors an amount at zero. Used for the salary complement, which must
// never appear as a negative earning.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
