package ledger

import (
	"fmt"
	"strings"

	"github.com/rahulprajapat123/investment-manager/date"
	"github.com/shopspring/decimal"
)

// Action is the side of a trade leg.
type Action string

const (
	Buy  Action = "Buy"
	Sell Action = "Sell"
)

// ParseAction canonicalizes a raw action cell ("BUY", " sell ") into the
// Buy/Sell vocabulary. It does not validate membership; the validator does.
func ParseAction(s string) Action {
	s = strings.TrimSpace(s)
	if s == "" {
		return Action("")
	}
	return Action(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
}

// Section is the capital-gains tax bucket of a disposal.
type Section string

const (
	ShortTerm Section = "ST"
	LongTerm  Section = "LT"
)

// ParseSection canonicalizes a raw section cell; empty defaults to ST.
func ParseSection(s string) Section {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ShortTerm
	}
	return Section(s)
}

// TradeRecord is one executed buy/sell leg in the canonical schema.
type TradeRecord struct {
	ClientID     string          `json:"client_id"`
	Broker       string          `json:"broker"`
	Account      string          `json:"account"`
	Date         date.Date       `json:"date"`
	ISIN         string          `json:"isin,omitempty"`
	Symbol       string          `json:"symbol"`
	Action       Action          `json:"action"`
	Qty          decimal.Decimal `json:"qty"`
	Price        decimal.Decimal `json:"price"`
	TradeValue   decimal.Decimal `json:"trade_value"`
	TotalCharges decimal.Decimal `json:"total_charges"`
	Exchange     string          `json:"exchange"`
	Currency     string          `json:"currency"`
}

// CapitalGain is one realized disposal event in the canonical schema.
type CapitalGain struct {
	ClientID         string          `json:"client_id"`
	Broker           string          `json:"broker"`
	Account          string          `json:"account"`
	Symbol           string          `json:"symbol"`
	ISIN             string          `json:"isin,omitempty"`
	Qty              decimal.Decimal `json:"qty"`
	SaleDate         date.Date       `json:"sale_date"`
	SaleRate         decimal.Decimal `json:"sale_rate"`
	SaleValue        decimal.Decimal `json:"sale_value"`
	SaleExpenses     decimal.Decimal `json:"sale_expenses"`
	PurchaseDate     date.Date       `json:"purchase_date"`
	PurchaseRate     decimal.Decimal `json:"purchase_rate_considered"`
	PurchaseValue    decimal.Decimal `json:"purchase_value"`
	PurchaseExpenses decimal.Decimal `json:"purchase_expenses"`
	PnL              decimal.Decimal `json:"pnl"`
	Section          Section         `json:"section"`
}

// ConsolidationKey is the cross-broker identity of the traded
// instrument: the ISIN when present, else exchange plus symbol.
func (t TradeRecord) ConsolidationKey() string {
	if isin := strings.TrimSpace(t.ISIN); isin != "" {
		return "ISIN:" + isin
	}
	exchange := t.Exchange
	if exchange == "" {
		exchange = "UNKNOWN"
	}
	return fmt.Sprintf("EX:%s:%s", exchange, t.Symbol)
}

// key returns a canonical textual identity used for exact-duplicate detection.
func (t TradeRecord) key() string {
	return strings.Join([]string{
		t.ClientID, t.Broker, t.Account, t.Date.String(), t.ISIN, t.Symbol,
		string(t.Action), t.Qty.String(), t.Price.String(), t.TradeValue.String(),
		t.TotalCharges.String(), t.Exchange, t.Currency,
	}, "\x1f")
}

func (g CapitalGain) key() string {
	return strings.Join([]string{
		g.ClientID, g.Broker, g.Account, g.Symbol, g.ISIN, g.Qty.String(),
		g.SaleDate.String(), g.SaleRate.String(), g.SaleValue.String(),
		g.SaleExpenses.String(), g.PurchaseDate.String(), g.PurchaseRate.String(),
		g.PurchaseValue.String(), g.PurchaseExpenses.String(), g.PnL.String(),
		string(g.Section),
	}, "\x1f")
}
