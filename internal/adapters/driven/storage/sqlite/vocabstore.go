package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// vocabularyStore implements driven.VocabularyStore.
// The snapshot occupies a single row; saving replaces it whole.
type vocabularyStore struct {
	store *Store
}

var _ driven.VocabularyStore = (*vocabularyStore)(nil)

// SaveSnapshot replaces the persisted snapshot.
func (s *vocabularyStore) SaveSnapshot(ctx context.Context, snap domain.VocabularySnapshot) error {
	termsJSON, err := json.Marshal(snap.Terms)
	if err != nil {
		return fmt.Errorf("marshalling terms: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO vocabulary (id, terms, idf, version, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			terms = excluded.terms,
			idf = excluded.idf,
			version = excluded.version,
			updated_at = excluded.updated_at
	`, string(termsJSON), float64SliceToBytes(snap.IDF), snap.Version,
		time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("saving vocabulary snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the persisted snapshot.
func (s *vocabularyStore) LoadSnapshot(ctx context.Context) (*domain.VocabularySnapshot, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT terms, idf, version FROM vocabulary WHERE id = 1")

	var termsJSON string
	var idf []byte
	var version string
	if err := row.Scan(&termsJSON, &idf, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoVocabulary
		}
		return nil, fmt.Errorf("scanning vocabulary snapshot: %w", err)
	}

	var snap domain.VocabularySnapshot
	if err := json.Unmarshal([]byte(termsJSON), &snap.Terms); err != nil {
		return nil, fmt.Errorf("unmarshaling terms: %w", err)
	}
	snap.IDF = bytesToFloat64Slice(idf)
	snap.Version = version

	if len(snap.Terms) != len(snap.IDF) {
		return nil, fmt.Errorf("vocabulary snapshot corrupt: %d terms, %d weights",
			len(snap.Terms), len(snap.IDF))
	}
	return &snap, nil
}
