package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TradeSummary is the weighted-average buy price of one (client, symbol)
// group, buys only.
type TradeSummary struct {
	ClientID            string
	Symbol              string
	TotalBuyQty         decimal.Decimal
	TotalBuyValue       decimal.Decimal
	WeightedAvgBuyPrice decimal.Decimal
}

// GainSummary is the realized P&L rollup of one (client, symbol) group.
type GainSummary struct {
	ClientID     string
	Symbol       string
	TotalPnL     decimal.Decimal
	STCG         decimal.Decimal
	LTCG         decimal.Decimal
	Transactions int
}

// ClientOverview is a per-client activity rollup.
type ClientOverview struct {
	ClientID         string
	Stocks           int
	Trades           int
	BuyTrades        int
	SellTrades       int
	TotalRealizedPnL decimal.Decimal
	TotalSTCG        decimal.Decimal
	TotalLTCG        decimal.Decimal
	TopProfit        []GainSummary // up to five, best first
	TopLoss          []GainSummary // up to five, worst first
}

type groupKey struct{ client, symbol string }

// WeightedAvgBuyPrice computes, per (client, symbol), total buy quantity,
// total buy value and the weighted-average buy price. Non-buy legs are
// ignored. Empty client or symbol matches everything. A group whose buy
// quantity is zero yields a zero average rather than failing.
func WeightedAvgBuyPrice(trades []TradeRecord, clientID, symbol string) []TradeSummary {
	qtys := make(map[groupKey]decimal.Decimal)
	values := make(map[groupKey]decimal.Decimal)
	for _, t := range trades {
		if t.Action != Buy {
			continue
		}
		if clientID != "" && t.ClientID != clientID {
			continue
		}
		if symbol != "" && t.Symbol != symbol {
			continue
		}
		k := groupKey{t.ClientID, t.Symbol}
		qtys[k] = qtys[k].Add(t.Qty)
		values[k] = values[k].Add(Mul(t.Qty, t.Price))
	}

	summaries := make([]TradeSummary, 0, len(qtys))
	for k, qty := range qtys {
		value := values[k]
		avg := decimal.Zero
		if qty.IsPositive() {
			avg, _ = Div(value, qty)
		}
		summaries = append(summaries, TradeSummary{
			ClientID:            k.client,
			Symbol:              k.symbol,
			TotalBuyQty:         Round(qty),
			TotalBuyValue:       Round(value),
			WeightedAvgBuyPrice: avg,
		})
	}
	sortByClientSymbol(summaries, func(s TradeSummary) (string, string) { return s.ClientID, s.Symbol })
	return summaries
}

// RealizedPnLByStock sums realized P&L per (client, symbol), split by
// short-term and long-term section. TotalPnL always equals STCG + LTCG.
func RealizedPnLByStock(gains []CapitalGain, clientID string) []GainSummary {
	groups := make(map[groupKey]*GainSummary)
	var order []groupKey
	for _, g := range gains {
		if clientID != "" && g.ClientID != clientID {
			continue
		}
		k := groupKey{g.ClientID, g.Symbol}
		summary, ok := groups[k]
		if !ok {
			summary = &GainSummary{ClientID: g.ClientID, Symbol: g.Symbol}
			groups[k] = summary
			order = append(order, k)
		}
		summary.TotalPnL = summary.TotalPnL.Add(g.PnL)
		switch g.Section {
		case LongTerm:
			summary.LTCG = summary.LTCG.Add(g.PnL)
		default:
			summary.STCG = summary.STCG.Add(g.PnL)
		}
		summary.Transactions++
	}

	summaries := make([]GainSummary, 0, len(order))
	for _, k := range order {
		s := *groups[k]
		s.TotalPnL = Round(s.TotalPnL)
		s.STCG = Round(s.STCG)
		s.LTCG = Round(s.LTCG)
		summaries = append(summaries, s)
	}
	sortByClientSymbol(summaries, func(s GainSummary) (string, string) { return s.ClientID, s.Symbol })
	return summaries
}

// Overview computes the activity rollup for one client.
func Overview(trades []TradeRecord, gains []CapitalGain, clientID string) ClientOverview {
	o := ClientOverview{ClientID: clientID}

	symbols := make(map[string]bool)
	for _, t := range trades {
		if t.ClientID != clientID {
			continue
		}
		symbols[t.Symbol] = true
		o.Trades++
		switch t.Action {
		case Buy:
			o.BuyTrades++
		case Sell:
			o.SellTrades++
		}
	}
	o.Stocks = len(symbols)

	for _, g := range gains {
		if g.ClientID != clientID {
			continue
		}
		o.TotalRealizedPnL = o.TotalRealizedPnL.Add(g.PnL)
		if g.Section == LongTerm {
			o.TotalLTCG = o.TotalLTCG.Add(g.PnL)
		} else {
			o.TotalSTCG = o.TotalSTCG.Add(g.PnL)
		}
	}
	o.TotalRealizedPnL = Round(o.TotalRealizedPnL)
	o.TotalSTCG = Round(o.TotalSTCG)
	o.TotalLTCG = Round(o.TotalLTCG)

	byStock := RealizedPnLByStock(gains, clientID)
	sort.SliceStable(byStock, func(i, j int) bool {
		return byStock[i].TotalPnL.GreaterThan(byStock[j].TotalPnL)
	})
	o.TopProfit = topN(byStock, 5)
	reversed := make([]GainSummary, len(byStock))
	for i, s := range byStock {
		reversed[len(byStock)-1-i] = s
	}
	o.TopLoss = topN(reversed, 5)
	return o
}

// Clients returns the sorted union of client ids present in either
// record set.
func Clients(trades []TradeRecord, gains []CapitalGain) []string {
	seen := make(map[string]bool)
	for _, t := range trades {
		seen[t.ClientID] = true
	}
	for _, g := range gains {
		seen[g.ClientID] = true
	}
	clients := make([]string, 0, len(seen))
	for c := range seen {
		clients = append(clients, c)
	}
	sort.Strings(clients)
	return clients
}

func topN(s []GainSummary, n int) []GainSummary {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]GainSummary, len(s))
	copy(out, s)
	return out
}

func sortByClientSymbol[T any](s []T, key func(T) (string, string)) {
	sort.SliceStable(s, func(i, j int) bool {
		ci, si := key(s[i])
		cj, sj := key(s[j])
		if ci != cj {
			return ci < cj
		}
		return si < sj
	})
}
