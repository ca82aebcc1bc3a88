// Package renderer turns the pipeline's aggregated outputs into
// markdown reports.
package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount formats a decimal amount in the given currency, falling back
// to a plain two-place rendering for unknown currency codes.
func Amount(v decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return v.StringFixed(2)
	}
	return money.New(v.Shift(int32(cur.Fraction)).IntPart(), code).Display()
}

// Signed is like Amount but keeps an explicit sign for gain/loss columns.
func Signed(v decimal.Decimal, code string) string {
	if v.IsPositive() {
		return "+" + Amount(v, code)
	}
	return Amount(v, code)
}

// Percent renders a percentage value with a trailing percent sign.
func Percent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}
