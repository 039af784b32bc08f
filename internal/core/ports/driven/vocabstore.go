package driven

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// VocabularyStore persists the current vocabulary snapshot.
// There is exactly one snapshot; saving replaces it atomically.
type VocabularyStore interface {
	// SaveSnapshot replaces the persisted snapshot.
	SaveSnapshot(ctx context.Context, snap domain.VocabularySnapshot) error

	// LoadSnapshot returns the persisted snapshot.
	// Returns domain.ErrNoVocabulary when none has been saved yet.
	LoadSnapshot(ctx context.Context) (*domain.VocabularySnapshot, error)
}
