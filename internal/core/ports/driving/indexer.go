package driving

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// IndexStatus describes an in-flight indexing pass.
type IndexStatus struct {
	// ScanID identifies the pass, empty when idle.
	ScanID string

	// Running is true while a pass is in flight.
	Running bool

	// Processed counts files extracted or vectorized so far.
	Processed int

	// Total is the number of files the pass will touch, 0 until known.
	Total int
}

// Indexer reconciles the enumerated file set against the record store.
type Indexer interface {
	// Run executes one indexing pass and returns its report.
	// When full is true the store is cleared and every file re-indexed.
	// Passes are serialized: a concurrent call fails with
	// domain.ErrIndexInProgress.
	Run(ctx context.Context, full bool) (*domain.IndexReport, error)

	// Count returns the number of indexed records, used by callers to
	// decide whether any indexing has occurred yet.
	Count(ctx context.Context) (int, error)

	// Status returns progress of the in-flight pass, if any.
	Status() IndexStatus
}
