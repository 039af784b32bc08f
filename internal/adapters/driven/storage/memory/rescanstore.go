package memory

import (
	"context"
	"sync"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure RescanConfigStore implements the interface.
var _ driven.RescanConfigStore = (*RescanConfigStore)(nil)

// RescanConfigStore is an in-memory implementation of
// driven.RescanConfigStore.
type RescanConfigStore struct {
	mu    sync.RWMutex
	cfg   domain.RescanConfig
	saved bool
}

// NewRescanConfigStore creates a new in-memory rescan config store.
func NewRescanConfigStore() *RescanConfigStore {
	return &RescanConfigStore{}
}

// LoadRescanConfig returns the stored config, or defaults when unset.
func (s *RescanConfigStore) LoadRescanConfig(_ context.Context) (domain.RescanConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return domain.DefaultRescanConfig(), nil
	}
	return s.cfg, nil
}

// SaveRescanConfig replaces the stored config.
func (s *RescanConfigStore) SaveRescanConfig(_ context.Context, cfg domain.RescanConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.saved = true
	return nil
}
