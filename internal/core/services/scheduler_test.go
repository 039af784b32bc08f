package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harken-labs/pickr-cli/internal/adapters/driven/storage/memory"
	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

func TestSchedulerTriggerRescan(t *testing.T) {
	t.Run("runs a pass immediately", func(t *testing.T) {
		indexer := &stubIndexer{}
		scheduler := NewScheduler(memory.NewRescanConfigStore(), indexer)

		scheduler.TriggerRescan(context.Background())

		require.Eventually(t, func() bool {
			return indexer.runCount() == 1
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("tolerates a pass already in flight", func(t *testing.T) {
		indexer := &stubIndexer{err: domain.ErrIndexInProgress}
		scheduler := NewScheduler(memory.NewRescanConfigStore(), indexer)

		scheduler.TriggerRescan(context.Background())

		require.Eventually(t, func() bool {
			return indexer.runCount() == 1
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestSchedulerStart(t *testing.T) {
	t.Run("runs a due rescan on startup", func(t *testing.T) {
		rescan := memory.NewRescanConfigStore()
		require.NoError(t, rescan.SaveRescanConfig(context.Background(), domain.RescanConfig{
			Enabled:  true,
			Interval: time.Hour,
			LastScan: time.Now().Add(-2 * time.Hour),
		}))
		indexer := &stubIndexer{}
		scheduler := NewScheduler(rescan, indexer)

		done := make(chan error, 1)
		go func() { done <- scheduler.Start(context.Background()) }()

		require.Eventually(t, func() bool {
			return indexer.runCount() == 1
		}, 2*time.Second, 10*time.Millisecond)

		require.NoError(t, scheduler.Stop())
		require.NoError(t, <-done)
	})

	t.Run("skips the startup check when not due", func(t *testing.T) {
		rescan := memory.NewRescanConfigStore()
		require.NoError(t, rescan.SaveRescanConfig(context.Background(), domain.RescanConfig{
			Enabled:  true,
			Interval: time.Hour,
			LastScan: time.Now(),
		}))
		indexer := &stubIndexer{}
		scheduler := NewScheduler(rescan, indexer)

		done := make(chan error, 1)
		go func() { done <- scheduler.Start(context.Background()) }()

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, scheduler.Stop())
		require.NoError(t, <-done)

		assert.Zero(t, indexer.runCount())
	})

	t.Run("disabled config never rescans", func(t *testing.T) {
		rescan := memory.NewRescanConfigStore()
		require.NoError(t, rescan.SaveRescanConfig(context.Background(), domain.RescanConfig{
			Enabled:  false,
			Interval: time.Nanosecond,
			LastScan: time.Time{},
		}))
		indexer := &stubIndexer{}
		scheduler := NewScheduler(rescan, indexer)

		done := make(chan error, 1)
		go func() { done <- scheduler.Start(context.Background()) }()

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, scheduler.Stop())
		require.NoError(t, <-done)

		assert.Zero(t, indexer.runCount())
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		scheduler := NewScheduler(memory.NewRescanConfigStore(), &stubIndexer{})

		done := make(chan error, 1)
		go func() { done <- scheduler.Start(ctx) }()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop on context cancellation")
		}
	})
}
