package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
)

var indexFull bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the root directory and update the index",
	Long: `Scans the configured root directory and reconciles the index with it.
Unchanged files are skipped; new, modified and deleted files trigger a
vocabulary rebuild and re-vectorization of the whole corpus.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexFull, "full", false,
		"clear the index and re-index every file")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cmd.Printf("Indexing %s...\n", a.cfg.Root)

	report, err := indexWithProgress(cmd.Context(), cmd, a.indexer)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if report.NoOp() {
		cmd.Printf("Nothing changed. %d files indexed.\n", report.TotalIndexed)
		return nil
	}
	cmd.Printf("Indexed %d changed, removed %d, %d unchanged. %d files total (%.1fs).\n",
		report.AddedOrModified, report.Deleted, report.Unchanged,
		report.TotalIndexed, report.Finished.Sub(report.Started).Seconds())
	return nil
}

// indexWithProgress runs an indexing pass while displaying progress updates.
func indexWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	indexer driving.Indexer,
) (*domain.IndexReport, error) {
	type result struct {
		report *domain.IndexReport
		err    error
	}
	resCh := make(chan result, 1)
	go func() {
		report, err := indexer.Run(ctx, indexFull)
		resCh <- result{report, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastProcessed := 0
	for {
		select {
		case res := <-resCh:
			if lastProcessed > 0 {
				cmd.Println()
			}
			return res.report, res.err
		case <-ticker.C:
			status := indexer.Status()
			if status.Running && status.Processed > lastProcessed {
				cmd.Printf("\rProcessing... %d/%d files", status.Processed, status.Total)
				lastProcessed = status.Processed
			}
		}
	}
}
