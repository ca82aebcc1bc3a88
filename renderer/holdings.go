package renderer

import (
	"fmt"
	"strings"

	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/shopspring/decimal"
)

// HoldingsMarkdown renders a holdings view as a markdown report.
func HoldingsMarkdown(clientID string, holdings []ledger.Holding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Current Holdings — %s\n\n", clientID)
	if len(holdings) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Class | Platform | Qty | Avg Cost | Price | Value | Invested | Unrealized P/L | P/L % | Alloc % |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|")

	total := decimal.Zero
	invested := decimal.Zero
	for _, h := range holdings {
		platform := h.Platform
		if len(h.AllPlatforms) > 1 {
			platform = strings.Join(h.AllPlatforms, ", ")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			h.Symbol,
			h.AssetClass,
			platform,
			h.Quantity,
			Amount(h.AverageCost, h.Currency),
			Amount(h.CurrentPrice, h.Currency),
			Amount(h.CurrentValue, h.Currency),
			Amount(h.TotalInvested, h.Currency),
			Signed(h.UnrealizedPnL, h.Currency),
			Percent(h.UnrealizedPnLPct),
			h.Allocation.StringFixed(4)+"%",
		)
		total = total.Add(h.CurrentValue)
		invested = invested.Add(h.TotalInvested)
	}

	currency := holdings[0].Currency
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** | **%s** | **%s** | | |\n",
		Amount(total, currency),
		Amount(invested, currency),
		Signed(total.Sub(invested), currency),
	)
	return b.String()
}

// AvgBuyPriceMarkdown renders the weighted-average buy price rollup.
func AvgBuyPriceMarkdown(summaries []ledger.TradeSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Weighted Average Buy Prices\n\n")
	if len(summaries) == 0 {
		fmt.Fprintln(&b, "No buy trades.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Client | Symbol | Buy Qty | Buy Value | Avg Price |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.ClientID, s.Symbol, s.TotalBuyQty, s.TotalBuyValue.StringFixed(2), s.WeightedAvgBuyPrice.StringFixed(2))
	}
	return b.String()
}
