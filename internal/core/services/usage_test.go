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

func TestUsageServiceRecordSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("appends the event with all fields", func(t *testing.T) {
		history := memory.NewHistoryStore()
		service := NewUsageService(history)
		selectedAt := time.Date(2026, 8, 24, 16, 0, 0, 0, time.UTC)

		err := service.RecordSelection(ctx, domain.UsageEvent{
			RecordPath: "/docs/cv.pdf",
			Site:       "jobs.example.com",
			PageURL:    "https://jobs.example.com/apply",
			PageTitle:  "Application form",
			Context:    "upload your resume",
			SelectedAt: selectedAt,
		})
		require.NoError(t, err)

		events, err := history.ListBySite(ctx, "jobs.example.com", 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "/docs/cv.pdf", events[0].RecordPath)
		assert.Equal(t, "https://jobs.example.com/apply", events[0].PageURL)
		assert.Equal(t, "Application form", events[0].PageTitle)
		assert.Equal(t, "upload your resume", events[0].Context)
		assert.True(t, events[0].SelectedAt.Equal(selectedAt))
		assert.NotZero(t, events[0].ID)
	})

	t.Run("defaults the timestamp to now", func(t *testing.T) {
		history := memory.NewHistoryStore()
		service := NewUsageService(history)

		before := time.Now()
		err := service.RecordSelection(ctx, domain.UsageEvent{
			RecordPath: "/docs/cv.pdf",
			Site:       "jobs.example.com",
		})
		require.NoError(t, err)

		events, err := history.ListBySite(ctx, "jobs.example.com", 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.False(t, events[0].SelectedAt.Before(before))
	})

	t.Run("rejects missing record path", func(t *testing.T) {
		service := NewUsageService(memory.NewHistoryStore())

		err := service.RecordSelection(ctx, domain.UsageEvent{Site: "jobs.example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects missing site", func(t *testing.T) {
		service := NewUsageService(memory.NewHistoryStore())

		err := service.RecordSelection(ctx, domain.UsageEvent{RecordPath: "/docs/cv.pdf"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
