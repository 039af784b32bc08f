package domain

import "time"

// UsageEvent records a confirmed file selection for a destination site.
// Events are immutable once written; the history store only appends.
type UsageEvent struct {
	// ID is the auto-incrementing sequence number assigned by the store.
	ID int64

	// RecordPath references the selected FileRecord.
	RecordPath string

	// Site identifies the destination site (e.g. a hostname).
	// History lookups are indexed by site.
	Site string

	// PageURL is the destination page the selection was made for.
	PageURL string

	// PageTitle is the destination page title at selection time.
	PageTitle string

	// Context is the free-text query context captured at selection time.
	Context string

	// SelectedAt is when the selection was confirmed.
	SelectedAt time.Time
}

// UsageSummary aggregates a document's history for one site.
type UsageSummary struct {
	// RecordPath references the FileRecord.
	RecordPath string

	// Count is the number of selections recorded for the site.
	Count int

	// LastUsed is the most recent selection timestamp.
	LastUsed time.Time
}
