package driven

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// RecordHit is one similarity search result.
type RecordHit struct {
	// Record is the matched file record.
	Record domain.FileRecord

	// Similarity is the cosine similarity against the query vector (0-1).
	Similarity float64
}

// RecordStore persists file records keyed by path.
// Backed by SQLite for durable storage.
type RecordStore interface {
	// Save stores or updates a record (upsert by path).
	Save(ctx context.Context, record *domain.FileRecord) error

	// Get retrieves a record by path.
	Get(ctx context.Context, path string) (*domain.FileRecord, error)

	// Delete removes a record by path. Deleting a missing record is a no-op.
	Delete(ctx context.Context, path string) error

	// List returns all records in insertion order.
	List(ctx context.Context) ([]domain.FileRecord, error)

	// Clear removes every record. Used by full (non-incremental) indexing.
	Clear(ctx context.Context) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// SearchSimilar scans every stored vector whose kind passes the filter,
	// scores it by cosine similarity against the query vector, drops
	// non-positive scores and returns the top limit hits in descending
	// order. Ties keep insertion order.
	//
	// This is a brute-force linear scan, acceptable for corpora of hundreds
	// to low thousands of records. Callers depend only on the ranked-top-N
	// contract, so an approximate index can replace the scan later.
	SearchSimilar(ctx context.Context, query []float64, limit int, kind domain.FileKind) ([]RecordHit, error)
}
