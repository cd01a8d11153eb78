// Package logic implements the top-level run orchestration for goseal.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/encryption4all/goseal/internal/config"
	"github.com/encryption4all/goseal/internal/filter"
	"github.com/encryption4all/goseal/internal/processor"
)

// Run resolves the configured files, runs the processor over them and
// optionally prints a summary.
func Run(cfg *config.Config) error {
	start := time.Now()

	files, scanned, err := filter.Resolve(cfg.Files, cfg.SealSuffix, cfg.Unseal)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	cfg.Files = files
	excluded := scanned - len(files)

	proc, err := processor.New(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.Run()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running processor: %w", err)
	}

	return nil
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
