package ledger

import "testing"

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"BUY":    Buy,
		" sell ": Sell,
		"Buy":    Buy,
		"":       Action(""),
		"SeLL":   Sell,
	}
	for in, want := range cases {
		if got := ParseAction(in); got != want {
			t.Errorf("ParseAction(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSection(t *testing.T) {
	if got := ParseSection(""); got != ShortTerm {
		t.Errorf("empty section = %q, want ST", got)
	}
	if got := ParseSection(" lt "); got != LongTerm {
		t.Errorf("ParseSection(lt) = %q", got)
	}
}

func TestConsolidationKey(t *testing.T) {
	withISIN := TradeRecord{ISIN: "US0378331005", Symbol: "AAPL", Exchange: "NASDAQ"}
	if got := withISIN.ConsolidationKey(); got != "ISIN:US0378331005" {
		t.Errorf("ConsolidationKey = %q", got)
	}

	// without an ISIN, identity falls back to exchange plus symbol
	noISIN := TradeRecord{Symbol: "AAPL", Exchange: "NASDAQ"}
	if got := noISIN.ConsolidationKey(); got != "EX:NASDAQ:AAPL" {
		t.Errorf("ConsolidationKey = %q", got)
	}
	noExchange := TradeRecord{Symbol: "AAPL"}
	if got := noExchange.ConsolidationKey(); got != "EX:UNKNOWN:AAPL" {
		t.Errorf("ConsolidationKey = %q", got)
	}
}

func TestDuplicateKeyDistinguishesRecords(t *testing.T) {
	a := TradeRecord{ClientID: "C001", Symbol: "AAPL", Action: Buy}
	b := a
	if a.key() != b.key() {
		t.Error("identical records must share a key")
	}
	b.Action = Sell
	if a.key() == b.key() {
		t.Error("differing records must not share a key")
	}
}
