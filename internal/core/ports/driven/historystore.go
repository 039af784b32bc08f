package driven

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// HistoryStore is the append-only log of past file selections.
// Entries are never mutated; the store only appends and aggregates.
type HistoryStore interface {
	// Append writes a new event and assigns its sequence ID.
	Append(ctx context.Context, event *domain.UsageEvent) error

	// ListBySite returns events for a site, most recent first.
	ListBySite(ctx context.Context, site string, limit int) ([]domain.UsageEvent, error)

	// SummarizeBySite aggregates, per referenced record, the selection
	// count and most recent timestamp for a site.
	SummarizeBySite(ctx context.Context, site string) ([]domain.UsageSummary, error)
}
