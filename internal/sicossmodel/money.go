/*
Package sicossmodel - SICOSS core domain types

FILE: internal/sicossmodel/money.go

Money is the fixed-point decimal type used for every monetary field in the
pipeline. Internally backed by shopspring/decimal, which is arbitrary
precision, so sums over tens of thousands of legajos never lose precision
(spec.md §3: "≥18 integer digits").
*/
package sicossmodel

import "github.com/shopspring/decimal"

// Money is a two-decimal-place fixed point value.
type Money = decimal.Decimal

// MoneyCeiling is the clamp upper bound from invariant I7.
var MoneyCeiling = decimal.NewFromInt(50_000_000)

// Zero is the additive identity, exported for readability at call sites.
var Zero = decimal.Zero

// Round2 rounds m to 2 decimal places using half-away-from-zero rounding
// (decimal.Decimal.Round's rule), matching the "fixed-point decimals with
// two fractional digits" contract in §3.
func Round2(m Money) Money {
	return m.Round(2)
}

// ClampMoney enforces invariant I7: every monetary output lies in [0, 5e7].
func ClampMoney(m Money) Money {
	if m.IsNegative() {
		return decimal.Zero
	}
	if m.GreaterThan(MoneyCeiling) {
		return MoneyCeiling
	}
	return Round2(m)
}

// MoneyFromFloat builds a Money from a float64 literal, used for config
// values and test fixtures.
func MoneyFromFloat(f float64) Money {
	return decimal.NewFromFloat(f)
}

// ParseMoney parses a decimal literal string, used by tests and JSON config
// loading where string literals avoid float rounding surprises.
func ParseMoney(s string) (Money, error) {
	return decimal.NewFromString(s)
}
