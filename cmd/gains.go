package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/rahulprajapat123/investment-manager/renderer"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	client string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized capital gains per stock" }
func (*gainsCmd) Usage() string {
	return `invman gains [-client <id>]

  Rolls up realized P/L per stock from the ingested capital gains
  statements, split into short-term and long-term sections.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Client to report on. Defaults to the only client if one exists.")
}

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := runPipeline(ctx, false)
	if err != nil {
		return fail(err)
	}
	client, err := resolveClient(summary, c.client)
	if err != nil {
		return fail(err)
	}

	summaries := ledger.RealizedPnLByStock(summary.CapitalGains, client)
	printMarkdown(renderer.GainsMarkdown(client, summaries))
	return subcommands.ExitSuccess
}
