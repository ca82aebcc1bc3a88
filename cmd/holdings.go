package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/rahulprajapat123/investment-manager/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	client   string
	byBroker bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display current holdings derived from the trade books" }
func (*holdingsCmd) Usage() string {
	return `invman holdings [-client <id>] [-by-broker]

  Computes current open positions from the ingested trades: net
  quantity, average cost, unrealized P/L and allocation per symbol.
  By default positions are consolidated across brokers; -by-broker
  keeps one row per (symbol, broker) pair.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Client to report on. Defaults to the only client if one exists.")
	f.BoolVar(&c.byBroker, "by-broker", false, "Split positions per broker instead of consolidating")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := runPipeline(ctx, false)
	if err != nil {
		return fail(err)
	}
	client, err := resolveClient(summary, c.client)
	if err != nil {
		return fail(err)
	}

	var holdings []ledger.Holding
	if c.byBroker {
		holdings = ledger.HoldingsByBroker(summary.Trades, client)
	} else {
		holdings = ledger.CurrentHoldings(summary.Trades, client)
	}
	printMarkdown(renderer.HoldingsMarkdown(client, holdings))
	return subcommands.ExitSuccess
}
