package renderer

import (
	"strings"
	"testing"

	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAmount(t *testing.T) {
	if got := Amount(d("1234.5"), "USD"); got != "$1,234.50" {
		t.Errorf("Amount USD = %q", got)
	}
	// unknown code falls back to plain formatting
	if got := Amount(d("12.3"), "XXX"); got != "12.30" {
		t.Errorf("Amount fallback = %q", got)
	}
}

func TestSigned(t *testing.T) {
	if got := Signed(d("5"), "USD"); !strings.HasPrefix(got, "+") {
		t.Errorf("positive amount not signed: %q", got)
	}
	if got := Signed(d("-5"), "USD"); strings.HasPrefix(got, "+") {
		t.Errorf("negative amount signed positive: %q", got)
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	holdings := []ledger.Holding{
		{
			Symbol:           "AAPL",
			AssetClass:       ledger.AssetClassEquity,
			Platform:         "Zerodha",
			AllPlatforms:     []string{"Schwab", "Zerodha"},
			Currency:         "USD",
			Quantity:         d("30"),
			AverageCost:      d("120.00"),
			CurrentPrice:     d("150.00"),
			CurrentValue:     d("4500.00"),
			TotalInvested:    d("3600.00"),
			UnrealizedPnL:    d("900.00"),
			UnrealizedPnLPct: d("25.00"),
			Allocation:       d("100.0000"),
		},
	}
	md := HoldingsMarkdown("C001", holdings)
	for _, want := range []string{"C001", "AAPL", "Schwab, Zerodha", "| **Total**"} {
		if !strings.Contains(md, want) {
			t.Errorf("holdings report missing %q:\n%s", want, md)
		}
	}
}

func TestHoldingsMarkdownEmpty(t *testing.T) {
	md := HoldingsMarkdown("C001", nil)
	if !strings.Contains(md, "No open positions") {
		t.Errorf("empty report = %q", md)
	}
}

func TestGainsMarkdown(t *testing.T) {
	summaries := []ledger.GainSummary{
		{ClientID: "C001", Symbol: "AAPL", TotalPnL: d("150.00"), STCG: d("100.00"), LTCG: d("50.00"), Transactions: 2},
		{ClientID: "C001", Symbol: "MSFT", TotalPnL: d("-30.00"), STCG: d("-30.00"), Transactions: 1},
	}
	md := GainsMarkdown("C001", summaries)
	for _, want := range []string{"AAPL", "+150.00", "-30.00", "| **Total** | **+120.00**"} {
		if !strings.Contains(md, want) {
			t.Errorf("gains report missing %q:\n%s", want, md)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	s := &ledger.Summary{
		FilesDiscovered: 3,
		FilesIngested:   2,
		FilesSkipped:    1,
		Clients:         []string{"C001"},
		Validation: &ledger.Report{
			IsValid:     false,
			TotalErrors: 1,
			TradeErrors: []ledger.ValidationError{
				{Row: 0, Column: "qty", Kind: ledger.KindInvalidNumeric, Message: "qty must be positive"},
			},
		},
	}
	md := SummaryMarkdown(s)
	for _, want := range []string{"Files discovered: 3", "1 violation(s)", "invalid_numeric"} {
		if !strings.Contains(md, want) {
			t.Errorf("summary report missing %q:\n%s", want, md)
		}
	}
}

func TestValidationMarkdownValid(t *testing.T) {
	md := ValidationMarkdown(&ledger.Report{IsValid: true})
	if !strings.Contains(md, "All records passed validation") {
		t.Errorf("valid report = %q", md)
	}
}
