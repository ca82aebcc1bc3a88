package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	ledger "github.com/rahulprajapat123/investment-manager"
	"github.com/rahulprajapat123/investment-manager/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	failOnValidation bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "ingest all broker exports and write per-client reports" }
func (*runCmd) Usage() string {
	return `invman run [-fail-on-validation]

  Walks the data directory, ingests every trade book and capital gains
  statement found, validates the merged records, and writes holdings,
  gains and overview reports per client under the output directory.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.failOnValidation, "fail-on-validation", false, "Fail the run on any validation error")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := runPipeline(ctx, c.failOnValidation)
	if err != nil {
		return fail(err)
	}

	for _, client := range summary.Clients {
		if err := writeClientReports(summary, client); err != nil {
			return fail(err)
		}
	}
	if err := writeValidationReport(summary.Validation); err != nil {
		return fail(err)
	}

	printMarkdown(renderer.SummaryMarkdown(summary))
	fmt.Printf("Reports written to %s\n", *outputDir)
	return subcommands.ExitSuccess
}

func writeClientReports(s *ledger.Summary, client string) error {
	// Reports are written in a fixed order so run logs stay stable.
	reports := []struct {
		name    string
		content string
	}{
		{client + "_holdings.md", renderer.HoldingsMarkdown(client, ledger.CurrentHoldings(s.Trades, client))},
		{client + "_gains.md", renderer.GainsMarkdown(client, ledger.RealizedPnLByStock(s.CapitalGains, client))},
		{client + "_overview.md", renderer.OverviewMarkdown(ledger.Overview(s.Trades, s.CapitalGains, client))},
	}
	for _, r := range reports {
		path := filepath.Join(*outputDir, r.name)
		if err := os.WriteFile(path, []byte(r.content), 0644); err != nil {
			return fmt.Errorf("writing report %s: %w", path, err)
		}
	}
	return nil
}

func writeValidationReport(r *ledger.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding validation report: %w", err)
	}
	path := filepath.Join(*outputDir, "validation_report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing validation report: %w", err)
	}
	return nil
}
