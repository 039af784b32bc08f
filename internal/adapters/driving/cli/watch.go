package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harken-labs/pickr-cli/internal/logger"
)

// watchDebounce is the quiet period after a burst of file events before
// a rescan is triggered.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the root directory and keep the index fresh",
	Long: `Runs until interrupted. The periodic rescan schedule stays active,
and bursts of file changes under the root trigger an extra rescan
shortly after the burst settles.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	changes, err := a.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	go func() {
		if err := a.scheduler.Start(ctx); err != nil {
			logger.Warn("scheduler: %v", err)
		}
	}()
	defer func() {
		if err := a.scheduler.Stop(); err != nil {
			logger.Warn("stopping scheduler: %v", err)
		}
	}()

	cmd.Printf("Watching %s. Press Ctrl-C to stop.\n", a.cfg.Root)

	var debounce *time.Timer
	var rescanDue <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopping.")
			return nil
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Change: %s", path)
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
				rescanDue = debounce.C
			} else {
				if !debounce.Stop() {
					<-debounce.C
				}
				debounce.Reset(watchDebounce)
			}
		case <-rescanDue:
			debounce = nil
			rescanDue = nil
			a.scheduler.TriggerRescan(ctx)
		}
	}
}
