package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and rescan status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	count, err := a.indexer.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}

	cmd.Printf("Root:          %s\n", a.cfg.Root)
	cmd.Printf("Database:      %s\n", a.store.Path())
	cmd.Printf("Indexed files: %d\n", count)

	snap, err := a.store.VocabularyStore().LoadSnapshot(ctx)
	switch {
	case errors.Is(err, domain.ErrNoVocabulary):
		cmd.Println("Vocabulary:    none (run 'pickr index')")
	case err != nil:
		return fmt.Errorf("loading vocabulary: %w", err)
	default:
		cmd.Printf("Vocabulary:    %d terms (model %.12s)\n", len(snap.Terms), snap.Version)
	}

	rescan, err := a.store.RescanConfigStore().LoadRescanConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading rescan config: %w", err)
	}
	if rescan.Enabled {
		cmd.Printf("Rescan:        every %s\n", rescan.Interval)
	} else {
		cmd.Println("Rescan:        disabled")
	}
	if rescan.LastScan.IsZero() {
		cmd.Println("Last scan:     never")
	} else {
		cmd.Printf("Last scan:     %s\n", rescan.LastScan.Local().Format("2006-01-02 15:04:05"))
	}

	if a.scorer != nil {
		if err := a.scorer.Ping(ctx); err != nil {
			cmd.Printf("Scorer:        %s (unreachable)\n", a.scorer.ModelName())
		} else {
			cmd.Printf("Scorer:        %s (%d dims)\n", a.scorer.ModelName(), a.scorer.Dimensions())
		}
	}
	return nil
}
