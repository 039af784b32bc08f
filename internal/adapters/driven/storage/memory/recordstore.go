// Package memory provides in-memory store adapters.
// They are the reference implementations of the storage contracts and back
// the service tests; durable storage lives in the sqlite package.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Insertion order is preserved so similarity ties break deterministically.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.FileRecord
	order   []string
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.FileRecord),
	}
}

// Save stores or updates a record.
func (s *RecordStore) Save(_ context.Context, record *domain.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Path]; !ok {
		s.order = append(s.order, record.Path)
	}
	s.records[record.Path] = *record
	return nil
}

// Get retrieves a record by path.
func (s *RecordStore) Get(_ context.Context, path string) (*domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// Delete removes a record by path.
func (s *RecordStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[path]; !ok {
		return nil
	}
	delete(s.records, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all records in insertion order.
func (s *RecordStore) List(_ context.Context) ([]domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.FileRecord, 0, len(s.order))
	for _, path := range s.order {
		result = append(result, s.records[path])
	}
	return result, nil
}

// Clear removes every record.
func (s *RecordStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.FileRecord)
	s.order = nil
	return nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// SearchSimilar scores every stored vector by cosine similarity and returns
// the top limit hits with positive scores, descending, ties in insertion
// order.
func (s *RecordStore) SearchSimilar(
	_ context.Context, query []float64, limit int, kind domain.FileKind,
) ([]driven.RecordHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]driven.RecordHit, 0, len(s.order))
	for _, path := range s.order {
		rec := s.records[path]
		if !kind.Matches(rec.Kind) {
			continue
		}
		sim := domain.Cosine(query, rec.Vector)
		if sim <= 0 {
			continue
		}
		hits = append(hits, driven.RecordHit{Record: rec, Similarity: sim})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
