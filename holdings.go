package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AssetClassEquity is the only asset class in scope for broker exports.
const AssetClassEquity = "Equity"

// Holding is the current open position of a client in one symbol,
// optionally scoped to one broker. Positions with a net quantity of
// zero or less are closed and never appear in a holdings view, although
// their trade legs stay in the normalized record set.
type Holding struct {
	Symbol           string
	AssetClass       string
	Platform         string   // primary broker: the first chronological trade's broker
	AllPlatforms     []string // every broker holding the symbol, sorted
	Currency         string
	Quantity         decimal.Decimal
	AverageCost      decimal.Decimal
	CurrentPrice     decimal.Decimal // last chronological trade price, the market proxy
	CurrentValue     decimal.Decimal
	TotalInvested    decimal.Decimal
	UnrealizedPnL    decimal.Decimal
	UnrealizedPnLPct decimal.Decimal
	Allocation       decimal.Decimal // percent of all holdings' current value, 4 places
}

// CurrentHoldings computes the aggregated holdings view for one client:
// one row per symbol, consolidated across brokers, listing every
// platform that holds it.
func CurrentHoldings(trades []TradeRecord, clientID string) []Holding {
	groups := groupTrades(trades, clientID, func(t TradeRecord) string { return t.Symbol })

	var holdings []Holding
	for _, group := range groups {
		h, open := buildHolding(group)
		if !open {
			continue
		}
		brokers := make(map[string]bool)
		for _, t := range group {
			brokers[t.Broker] = true
		}
		h.AllPlatforms = make([]string, 0, len(brokers))
		for b := range brokers {
			h.AllPlatforms = append(h.AllPlatforms, b)
		}
		sort.Strings(h.AllPlatforms)
		holdings = append(holdings, h)
	}
	return allocate(holdings)
}

// HoldingsByBroker computes the broker-split view: one row per
// (symbol, broker) pair, with no cross-broker merging.
func HoldingsByBroker(trades []TradeRecord, clientID string) []Holding {
	groups := groupTrades(trades, clientID, func(t TradeRecord) string { return t.Symbol + "\x1f" + t.Broker })

	var holdings []Holding
	for _, group := range groups {
		h, open := buildHolding(group)
		if !open {
			continue
		}
		h.AllPlatforms = []string{group[0].Broker}
		holdings = append(holdings, h)
	}
	return allocate(holdings)
}

// groupTrades buckets a client's trades by key, each bucket sorted
// chronologically (record order breaks date ties, keeping runs stable).
func groupTrades(trades []TradeRecord, clientID string, key func(TradeRecord) string) [][]TradeRecord {
	buckets := make(map[string][]TradeRecord)
	var order []string
	for _, t := range trades {
		if t.ClientID != clientID {
			continue
		}
		k := key(t)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], t)
	}
	sort.Strings(order)

	groups := make([][]TradeRecord, 0, len(order))
	for _, k := range order {
		group := buckets[k]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		groups = append(groups, group)
	}
	return groups
}

// buildHolding computes one holding from a chronologically sorted trade
// group. The second value reports whether the position is still open.
func buildHolding(group []TradeRecord) (Holding, bool) {
	buyQty, sellQty, buyValue := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range group {
		switch t.Action {
		case Buy:
			buyQty = buyQty.Add(t.Qty)
			buyValue = buyValue.Add(Mul(t.Qty, t.Price))
		case Sell:
			sellQty = sellQty.Add(t.Qty)
		}
	}
	netQty := buyQty.Sub(sellQty)
	if !netQty.IsPositive() {
		return Holding{}, false
	}

	avgCost := decimal.Zero
	if buyQty.IsPositive() {
		avgCost, _ = Div(buyValue, buyQty)
	}
	lastPrice := group[len(group)-1].Price
	currentValue := Mul(netQty, lastPrice)
	invested := Mul(netQty, avgCost)
	pnl := currentValue.Sub(invested)
	pct := decimal.Zero
	if !invested.IsZero() {
		pct = Round(pnl.Div(invested).Mul(decimal.NewFromInt(100)))
	}

	return Holding{
		Symbol:           group[0].Symbol,
		AssetClass:       AssetClassEquity,
		Platform:         group[0].Broker,
		Currency:         group[0].Currency,
		Quantity:         Round(netQty),
		AverageCost:      avgCost,
		CurrentPrice:     Round(lastPrice),
		CurrentValue:     currentValue,
		TotalInvested:    invested,
		UnrealizedPnL:    Round(pnl),
		UnrealizedPnLPct: pct,
	}, true
}

// allocate fills each holding's allocation percentage in a second pass,
// once every holding's current value is known.
func allocate(holdings []Holding) []Holding {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.CurrentValue)
	}
	if total.IsZero() {
		return holdings
	}
	for i := range holdings {
		holdings[i].Allocation = RoundPlaces(holdings[i].CurrentValue.Div(total).Mul(decimal.NewFromInt(100)), 4)
	}
	return holdings
}
