package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoFiles reports a run where not a single file could be ingested.
	ErrNoFiles = errors.New("no files were successfully ingested")
	// ErrValidationFailed reports a run halted by fail-fast mode.
	ErrValidationFailed = errors.New("validation failed")
)

// extractWorkers bounds the per-file extraction concurrency.
const extractWorkers = 8

// Options configures a pipeline run.
type Options struct {
	DataDir          string
	OutputDir        string // created if missing; reports are written here by the caller
	FailOnValidation bool   // fail-fast mode: halt the run on any validation error
}

// FileError records a single file that could not be processed. Per-file
// failures never abort the run.
type FileError struct {
	Path string
	Err  error
}

// Summary is the result of one pipeline run, the sole contract exposed
// to the CLI and any other trigger.
type Summary struct {
	FilesDiscovered int
	FilesIngested   int
	FilesSkipped    int
	Trades          []TradeRecord
	CapitalGains    []CapitalGain
	Clients         []string
	Validation      *Report
	FileErrors      []FileError
}

// fileResult is the fan-in unit of the parallel extraction phase.
type fileResult struct {
	trades  []TradeRecord
	gains   []CapitalGain
	skipped string // non-empty when the file was skipped, with the reason
	err     error  // non-nil when the file failed
}

// Run executes the full pipeline over a directory tree: discover files,
// classify/extract/normalize each one concurrently, merge the batches,
// then validate and expose the merged record sets. Holdings and rollups
// are recomputed from the summary by the caller; the run is idempotent
// for an unchanged input tree.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if _, err := os.Stat(opts.DataDir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", opts.DataDir, err)
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	paths, err := DiscoverFiles(opts.DataDir)
	if err != nil {
		return nil, err
	}
	summary := &Summary{FilesDiscovered: len(paths)}

	// Each file owns its own grid and batch; results land in a
	// pre-sized slice by index, then merge in discovery order.
	results := make([]fileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, res := range results {
		switch {
		case res.err != nil:
			summary.FileErrors = append(summary.FileErrors, FileError{Path: paths[i], Err: res.err})
			log.Printf("warning: skipping %s: %v", paths[i], res.err)
		case res.skipped != "":
			summary.FilesSkipped++
			log.Printf("skipping %s: %s", paths[i], res.skipped)
		default:
			summary.FilesIngested++
			summary.Trades = append(summary.Trades, res.trades...)
			summary.CapitalGains = append(summary.CapitalGains, res.gains...)
		}
	}
	if summary.FilesIngested == 0 {
		return nil, fmt.Errorf("%w (discovered %d files under %s)", ErrNoFiles, len(paths), opts.DataDir)
	}

	summary.Clients = Clients(summary.Trades, summary.CapitalGains)
	summary.Validation = Validate(summary.Trades, summary.CapitalGains)
	if opts.FailOnValidation && !summary.Validation.IsValid {
		return summary, fmt.Errorf("%w: %d errors", ErrValidationFailed, summary.Validation.TotalErrors)
	}
	return summary, nil
}

// processFile runs classify → extract → normalize for one file.
func processFile(path string) fileResult {
	if Classify(path) == CategoryUnknown {
		return fileResult{skipped: "unrecognized file category"}
	}
	src, err := ReadSourceFile(path)
	if err != nil {
		return fileResult{err: err}
	}
	if len(src.Header) == 0 {
		return fileResult{skipped: "unreadable tabular payload"}
	}
	switch src.Category {
	case CategoryTradeBook:
		trades, _ := NormalizeTrades(src)
		return fileResult{trades: trades}
	case CategoryCapitalGains:
		gains, _ := NormalizeCapitalGains(src)
		return fileResult{gains: gains}
	default:
		// Holdings exports are derived data; the pipeline recomputes
		// holdings from trades instead of trusting them.
		return fileResult{skipped: "holdings exports are not ingested"}
	}
}

// DiscoverFiles walks the data root and returns every eligible broker
// export, in deterministic lexical order.
func DiscoverFiles(dataDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xls", ".csv":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering files under %s: %w", dataDir, err)
	}
	return paths, nil
}
