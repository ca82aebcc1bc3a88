package renderer

import (
	"fmt"
	"strings"

	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/shopspring/decimal"
)

// GainsMarkdown renders the realized P&L rollup per stock, with the
// short/long-term split and a totals row.
func GainsMarkdown(clientID string, summaries []ledger.GainSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Realized Capital Gains — %s\n\n", clientID)
	if len(summaries) == 0 {
		fmt.Fprintln(&b, "No realized gains.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Total P/L | Short Term | Long Term | Disposals |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")

	total, st, lt := decimal.Zero, decimal.Zero, decimal.Zero
	count := 0
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			s.Symbol, signedFixed(s.TotalPnL), signedFixed(s.STCG), signedFixed(s.LTCG), s.Transactions)
		total = total.Add(s.TotalPnL)
		st = st.Add(s.STCG)
		lt = lt.Add(s.LTCG)
		count += s.Transactions
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | **%s** | **%d** |\n",
		signedFixed(total), signedFixed(st), signedFixed(lt), count)
	return b.String()
}

// OverviewMarkdown renders the per-client activity rollup.
func OverviewMarkdown(o ledger.ClientOverview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Client Overview — %s\n\n", o.ClientID)
	fmt.Fprintf(&b, "- Stocks traded: %d\n", o.Stocks)
	fmt.Fprintf(&b, "- Trades: %d (%d buys, %d sells)\n", o.Trades, o.BuyTrades, o.SellTrades)
	fmt.Fprintf(&b, "- Total realized P/L: %s\n", signedFixed(o.TotalRealizedPnL))
	fmt.Fprintf(&b, "- Short term: %s, long term: %s\n", signedFixed(o.TotalSTCG), signedFixed(o.TotalLTCG))

	if len(o.TopProfit) > 0 {
		fmt.Fprint(&b, "\n## Top Gainers\n\n")
		for _, s := range o.TopProfit {
			fmt.Fprintf(&b, "- %s: %s\n", s.Symbol, signedFixed(s.TotalPnL))
		}
	}
	if len(o.TopLoss) > 0 {
		fmt.Fprint(&b, "\n## Top Losers\n\n")
		for _, s := range o.TopLoss {
			fmt.Fprintf(&b, "- %s: %s\n", s.Symbol, signedFixed(s.TotalPnL))
		}
	}
	return b.String()
}

func signedFixed(v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + v.StringFixed(2)
	}
	return v.StringFixed(2)
}
