package ledger

import "fmt"

// ErrorKind labels one class of validation failure.
type ErrorKind string

const (
	KindNullValue      ErrorKind = "null_value"
	KindInvalidNumeric ErrorKind = "invalid_numeric"
	KindInvalidEnum    ErrorKind = "invalid_enum"
	KindValueMismatch  ErrorKind = "value_mismatch"
	KindDuplicateRow   ErrorKind = "duplicate_row"
)

// ValidationError is one rule violation on one row. Violations are
// collected, never raised: validation must not abort the pipeline.
type ValidationError struct {
	Row     int       `json:"row_index"`
	Column  string    `json:"column"`
	Kind    ErrorKind `json:"error_type"`
	Message string    `json:"message"`
	Value   string    `json:"value,omitempty"`
}

// Report is the outcome of validating the merged record sets.
type Report struct {
	IsValid           bool              `json:"is_valid"`
	TradeErrors       []ValidationError `json:"trades_errors"`
	CapitalGainErrors []ValidationError `json:"capital_gains_errors"`
	TotalErrors       int               `json:"total_errors"`
}

// Counts returns the number of violations per error kind.
func (r *Report) Counts() map[ErrorKind]int {
	counts := make(map[ErrorKind]int)
	for _, e := range r.TradeErrors {
		counts[e.Kind]++
	}
	for _, e := range r.CapitalGainErrors {
		counts[e.Kind]++
	}
	return counts
}

// Validate applies the full rule set to both record sets and returns the
// structured report. The caller decides whether a failed report halts
// the run (fail-fast mode) or annotates it.
func Validate(trades []TradeRecord, gains []CapitalGain) *Report {
	report := &Report{
		TradeErrors:       validateTrades(trades),
		CapitalGainErrors: validateCapitalGains(gains),
	}
	report.TotalErrors = len(report.TradeErrors) + len(report.CapitalGainErrors)
	report.IsValid = report.TotalErrors == 0
	return report
}

func validateTrades(trades []TradeRecord) []ValidationError {
	var errs []ValidationError
	add := func(e ValidationError) { errs = append(errs, e) }

	for i, t := range trades {
		if t.Symbol == "" {
			add(ValidationError{Row: i, Column: "symbol", Kind: KindNullValue, Message: "symbol is empty"})
		}
		if !t.Qty.IsPositive() {
			add(ValidationError{Row: i, Column: "qty", Kind: KindInvalidNumeric,
				Message: "quantity must be greater than zero", Value: t.Qty.String()})
		}
		if t.Price.IsNegative() {
			add(ValidationError{Row: i, Column: "price", Kind: KindInvalidNumeric,
				Message: "price must not be negative", Value: t.Price.String()})
		}
		if t.TotalCharges.IsNegative() {
			add(ValidationError{Row: i, Column: "total_charges", Kind: KindInvalidNumeric,
				Message: "total charges must not be negative", Value: t.TotalCharges.String()})
		}
		if t.Action != Buy && t.Action != Sell {
			add(ValidationError{Row: i, Column: "action", Kind: KindInvalidEnum,
				Message: fmt.Sprintf("action must be Buy or Sell, got: %s", t.Action), Value: string(t.Action)})
		}
		expected := t.Qty.Mul(t.Price)
		if diff := t.TradeValue.Sub(expected).Abs(); diff.GreaterThan(Tolerance) {
			add(ValidationError{Row: i, Column: "trade_value", Kind: KindValueMismatch,
				Message: fmt.Sprintf("trade value %s does not match qty*price %s (diff: %s)", t.TradeValue, expected, diff),
				Value:   t.TradeValue.String()})
		}
	}

	keys := make([]string, len(trades))
	for i, t := range trades {
		keys[i] = t.key()
	}
	for _, row := range duplicateRows(keys) {
		add(ValidationError{Row: row, Column: "row", Kind: KindDuplicateRow, Message: "duplicate trade row"})
	}
	return errs
}

func validateCapitalGains(gains []CapitalGain) []ValidationError {
	var errs []ValidationError
	add := func(e ValidationError) { errs = append(errs, e) }

	for i, g := range gains {
		if g.Symbol == "" {
			add(ValidationError{Row: i, Column: "symbol", Kind: KindNullValue, Message: "symbol is empty"})
		}
		if !g.Qty.IsPositive() {
			add(ValidationError{Row: i, Column: "qty", Kind: KindInvalidNumeric,
				Message: "quantity must be greater than zero", Value: g.Qty.String()})
		}
		if g.Section != ShortTerm && g.Section != LongTerm {
			add(ValidationError{Row: i, Column: "section", Kind: KindInvalidEnum,
				Message: fmt.Sprintf("section must be ST or LT, got: %s", g.Section), Value: string(g.Section)})
		}
		expected := g.SaleValue.Sub(g.SaleExpenses).Sub(g.PurchaseValue.Add(g.PurchaseExpenses))
		if diff := g.PnL.Sub(expected).Abs(); diff.GreaterThan(Tolerance) {
			add(ValidationError{Row: i, Column: "pnl", Kind: KindValueMismatch,
				Message: fmt.Sprintf("pnl %s does not match calculated %s (diff: %s)", g.PnL, expected, diff),
				Value:   g.PnL.String()})
		}
	}

	keys := make([]string, len(gains))
	for i, g := range gains {
		keys[i] = g.key()
	}
	for _, row := range duplicateRows(keys) {
		add(ValidationError{Row: row, Column: "row", Kind: KindDuplicateRow, Message: "duplicate capital gains row"})
	}
	return errs
}

// duplicateRows returns, in order, every row index belonging to a group
// of exact duplicates (all occurrences are flagged, not just repeats).
func duplicateRows(keys []string) []int {
	count := make(map[string]int, len(keys))
	for _, k := range keys {
		count[k]++
	}
	var rows []int
	for i, k := range keys {
		if count[k] > 1 {
			rows = append(rows, i)
		}
	}
	return rows
}
