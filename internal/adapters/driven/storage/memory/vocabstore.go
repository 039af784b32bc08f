package memory

import (
	"context"
	"sync"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure VocabularyStore implements the interface.
var _ driven.VocabularyStore = (*VocabularyStore)(nil)

// VocabularyStore is an in-memory implementation of driven.VocabularyStore.
type VocabularyStore struct {
	mu   sync.RWMutex
	snap *domain.VocabularySnapshot
}

// NewVocabularyStore creates a new in-memory vocabulary store.
func NewVocabularyStore() *VocabularyStore {
	return &VocabularyStore{}
}

// SaveSnapshot replaces the stored snapshot.
func (s *VocabularyStore) SaveSnapshot(_ context.Context, snap domain.VocabularySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
	return nil
}

// LoadSnapshot returns the stored snapshot.
func (s *VocabularyStore) LoadSnapshot(_ context.Context) (*domain.VocabularySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, domain.ErrNoVocabulary
	}
	snap := *s.snap
	return &snap, nil
}
