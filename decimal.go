package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// All monetary and quantity values in the pipeline flow through this
// file. No raw binary floating point is used for money anywhere.

var (
	// ErrConversion reports an input that cannot be parsed as a decimal.
	ErrConversion = errors.New("cannot convert to decimal")
	// ErrDivideByZero reports a division with a zero denominator.
	ErrDivideByZero = errors.New("cannot divide by zero")
	// ErrEmptyWeights reports a weighted average whose total weight is zero.
	ErrEmptyWeights = errors.New("total weight cannot be zero")
)

// Tolerance is the fixed tolerance used for every computed-value
// cross-check (trade value and realized P&L alike).
var Tolerance = decimal.RequireFromString("0.01")

// ToDecimal converts a raw cell value to a decimal. Empty input yields
// zero; thousands separators are stripped before parsing.
func ToDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	value = strings.ReplaceAll(value, ",", "")
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrConversion, value)
	}
	return d, nil
}

// RoundPlaces rounds half away from zero to the given number of places.
func RoundPlaces(v decimal.Decimal, places int32) decimal.Decimal {
	return v.Round(places)
}

// Round rounds half away from zero to 2 places, the money precision.
func Round(v decimal.Decimal) decimal.Decimal { return v.Round(2) }

// Mul multiplies two decimals and rounds the product to 2 places.
func Mul(a, b decimal.Decimal) decimal.Decimal { return Round(a.Mul(b)) }

// Div divides two decimals and rounds the quotient to 2 places.
// It fails with ErrDivideByZero when the denominator is zero.
func Div(num, den decimal.Decimal) (decimal.Decimal, error) {
	if den.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	return Round(num.Div(den)), nil
}

// Sum adds any number of decimals.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// WeightedAverage computes the weighted average of values, rounded to 2
// places. Values and weights must have the same length; an empty input
// yields zero; a zero total weight fails with ErrEmptyWeights.
func WeightedAverage(values, weights []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) != len(weights) {
		return decimal.Zero, fmt.Errorf("values and weights must have same length: %d != %d", len(values), len(weights))
	}
	if len(values) == 0 {
		return decimal.Zero, nil
	}
	totalWeight := Sum(weights...)
	if totalWeight.IsZero() {
		return decimal.Zero, ErrEmptyWeights
	}
	weighted := decimal.Zero
	for i, v := range values {
		weighted = weighted.Add(v.Mul(weights[i]))
	}
	return Div(weighted, totalWeight)
}
