package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
// usage_events is append-only; no update or delete statements exist here.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Append writes a new event and assigns its sequence ID.
func (s *historyStore) Append(ctx context.Context, event *domain.UsageEvent) error {
	if event == nil {
		return domain.ErrInvalidInput
	}

	result, err := s.store.db.ExecContext(ctx, `
		INSERT INTO usage_events (record_path, site, page_url, page_title, context, selected_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.RecordPath, event.Site,
		nullString(event.PageURL), nullString(event.PageTitle), nullString(event.Context),
		event.SelectedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("appending usage event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading usage event id: %w", err)
	}
	event.ID = id
	return nil
}

// ListBySite returns events for a site, most recent first.
func (s *historyStore) ListBySite(ctx context.Context, site string, limit int) ([]domain.UsageEvent, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, record_path, site, page_url, page_title, context, selected_at
		FROM usage_events
		WHERE site = ?
		ORDER BY id DESC
		LIMIT ?
	`, site, limit)
	if err != nil {
		return nil, fmt.Errorf("querying usage events: %w", err)
	}
	defer rows.Close()

	var events []domain.UsageEvent //nolint:prealloc // size unknown from query
	for rows.Next() {
		var event domain.UsageEvent
		var pageURL, pageTitle, eventContext sql.NullString
		var selectedAt string

		if err := rows.Scan(&event.ID, &event.RecordPath, &event.Site,
			&pageURL, &pageTitle, &eventContext, &selectedAt); err != nil {
			return nil, fmt.Errorf("scanning usage event: %w", err)
		}

		event.PageURL = pageURL.String
		event.PageTitle = pageTitle.String
		event.Context = eventContext.String
		if t, err := time.Parse(time.RFC3339, selectedAt); err == nil {
			event.SelectedAt = t
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage events: %w", err)
	}
	return events, nil
}

// SummarizeBySite aggregates count and last use per referenced record.
// The site index makes this a single indexed scan.
func (s *historyStore) SummarizeBySite(ctx context.Context, site string) ([]domain.UsageSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT record_path, COUNT(*), MAX(selected_at)
		FROM usage_events
		WHERE site = ?
		GROUP BY record_path
	`, site)
	if err != nil {
		return nil, fmt.Errorf("querying usage summary: %w", err)
	}
	defer rows.Close()

	var summaries []domain.UsageSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var summary domain.UsageSummary
		var lastUsed string

		if err := rows.Scan(&summary.RecordPath, &summary.Count, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning usage summary: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, lastUsed); err == nil {
			summary.LastUsed = t
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage summaries: %w", err)
	}
	return summaries, nil
}
