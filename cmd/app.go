// Package cmd implements the CLI application that drives the ingest
// pipeline and its reports.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	ledger "github.com/rahulprajapat123/investment-manager"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "pipeline")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "data", "Directory tree containing the broker export files")
var outputDir = flag.String("output", "output", "Directory where reports are written")

// runPipeline executes the full ingest over the app data directory.
func runPipeline(ctx context.Context, failOnValidation bool) (*ledger.Summary, error) {
	return ledger.Run(ctx, ledger.Options{
		DataDir:          *dataDir,
		OutputDir:        *outputDir,
		FailOnValidation: failOnValidation,
	})
}

// resolveClient picks the client to report on: the -client flag when
// given, otherwise the only client in the summary.
func resolveClient(s *ledger.Summary, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if len(s.Clients) == 1 {
		return s.Clients[0], nil
	}
	return "", fmt.Errorf("several clients found (%d), use -client to pick one", len(s.Clients))
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
