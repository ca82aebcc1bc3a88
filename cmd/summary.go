package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/rahulprajapat123/investment-manager/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	client string
	prices bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "per-client activity overview" }
func (*summaryCmd) Usage() string {
	return `invman summary [-client <id>] [-prices]

  Displays an activity overview for a client: trade counts, realized
  P/L with the short/long-term split, and the best and worst performing
  stocks. With -prices, adds the weighted-average buy price per symbol.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Client to report on. Defaults to the only client if one exists.")
	f.BoolVar(&c.prices, "prices", false, "Also display weighted-average buy prices")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := runPipeline(ctx, false)
	if err != nil {
		return fail(err)
	}
	client, err := resolveClient(summary, c.client)
	if err != nil {
		return fail(err)
	}

	overview := ledger.Overview(summary.Trades, summary.CapitalGains, client)
	printMarkdown(renderer.OverviewMarkdown(overview))

	if c.prices {
		prices := ledger.WeightedAvgBuyPrice(summary.Trades, client, "")
		printMarkdown(renderer.AvgBuyPriceMarkdown(prices))
	}
	return subcommands.ExitSuccess
}
