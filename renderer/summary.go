package renderer

import (
	"fmt"
	"sort"
	"strings"

	ledger "github.com/rahulprajapat123/investment-manager"
)

// SummaryMarkdown renders the result of a pipeline run: file counts,
// record counts and the validation outcome.
func SummaryMarkdown(s *ledger.Summary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Pipeline Run\n\n")
	fmt.Fprintf(&b, "- Files discovered: %d\n", s.FilesDiscovered)
	fmt.Fprintf(&b, "- Files ingested: %d\n", s.FilesIngested)
	fmt.Fprintf(&b, "- Files skipped: %d\n", s.FilesSkipped)
	fmt.Fprintf(&b, "- Trades: %d\n", len(s.Trades))
	fmt.Fprintf(&b, "- Capital gains: %d\n", len(s.CapitalGains))
	fmt.Fprintf(&b, "- Clients: %s\n", strings.Join(s.Clients, ", "))

	if len(s.FileErrors) > 0 {
		fmt.Fprint(&b, "\n## File Errors\n\n")
		for _, fe := range s.FileErrors {
			fmt.Fprintf(&b, "- %s: %v\n", fe.Path, fe.Err)
		}
	}

	fmt.Fprint(&b, "\n## Validation\n\n")
	if s.Validation == nil || s.Validation.IsValid {
		fmt.Fprintln(&b, "All records passed validation.")
		return b.String()
	}
	fmt.Fprintf(&b, "%d violation(s).\n\n", s.Validation.TotalErrors)

	counts := s.Validation.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Fprintln(&b, "| Kind | Count |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, k := range kinds {
		fmt.Fprintf(&b, "| %s | %d |\n", k, counts[ledger.ErrorKind(k)])
	}
	return b.String()
}

// ValidationMarkdown renders the full violation list for one run.
func ValidationMarkdown(r *ledger.Report) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Validation Report\n\n")
	if r.IsValid {
		fmt.Fprintln(&b, "All records passed validation.")
		return b.String()
	}

	writeErrors := func(title string, errs []ledger.ValidationError) {
		if len(errs) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		fmt.Fprintln(&b, "| Row | Column | Kind | Message |")
		fmt.Fprintln(&b, "|---:|:---|:---|:---|")
		for _, e := range errs {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", e.Row, e.Column, e.Kind, e.Message)
		}
		fmt.Fprintln(&b)
	}
	writeErrors("Trades", r.TradeErrors)
	writeErrors("Capital Gains", r.CapitalGainErrors)
	return b.String()
}
