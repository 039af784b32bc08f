package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

// recordColumns is the canonical select list for record rows.
const recordColumns = `path, name, kind, size, modified_at, vector, aux_vector, preview, model_version, indexed_at`

// Save stores or updates a record.
func (s *recordStore) Save(ctx context.Context, record *domain.FileRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO records (path, name, kind, size, modified_at, vector, aux_vector, preview, model_version, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			size = excluded.size,
			modified_at = excluded.modified_at,
			vector = excluded.vector,
			aux_vector = excluded.aux_vector,
			preview = excluded.preview,
			model_version = excluded.model_version,
			indexed_at = excluded.indexed_at
	`, record.Path, record.Name, string(record.Kind), record.Size,
		record.ModifiedAt.Format(time.RFC3339),
		float64SliceToBytes(record.Vector), float32SliceToBytes(record.AuxVector),
		record.Preview, record.ModelVersion,
		record.IndexedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// Get retrieves a record by path.
func (s *recordStore) Get(ctx context.Context, path string) (*domain.FileRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE path = ?`, path)

	record, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return record, nil
}

// Delete removes a record by path.
func (s *recordStore) Delete(ctx context.Context, path string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM records WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// List returns all records in insertion order.
func (s *recordStore) List(ctx context.Context) ([]domain.FileRecord, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.FileRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// Clear removes every record.
func (s *recordStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM records")
	if err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *recordStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// SearchSimilar scores every stored vector against the query by cosine
// similarity. The scan runs in insertion order so equal scores keep their
// enumeration order under the stable sort.
func (s *recordStore) SearchSimilar(
	ctx context.Context, query []float64, limit int, kind domain.FileKind,
) ([]driven.RecordHit, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	hits := make([]driven.RecordHit, 0, len(records))
	for i := range records {
		if !kind.Matches(records[i].Kind) {
			continue
		}
		sim := domain.Cosine(query, records[i].Vector)
		if sim <= 0 {
			continue
		}
		hits = append(hits, driven.RecordHit{Record: records[i], Similarity: sim})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// scanRecord scans one record row via the given scan function.
func scanRecord(scan func(dest ...any) error) (*domain.FileRecord, error) {
	var record domain.FileRecord
	var kind, modifiedAt, indexedAt string
	var vector, auxVector []byte

	if err := scan(&record.Path, &record.Name, &kind, &record.Size, &modifiedAt,
		&vector, &auxVector, &record.Preview, &record.ModelVersion, &indexedAt); err != nil {
		return nil, err
	}

	record.Kind = domain.FileKind(kind)
	record.Vector = bytesToFloat64Slice(vector)
	record.AuxVector = bytesToFloat32Slice(auxVector)
	if t, err := time.Parse(time.RFC3339, modifiedAt); err == nil {
		record.ModifiedAt = t
	}
	if t, err := time.Parse(time.RFC3339, indexedAt); err == nil {
		record.IndexedAt = t
	}

	return &record, nil
}
