package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexInProgress indicates an indexing pass is already running.
	// Indexing passes are serialized; callers should retry later.
	ErrIndexInProgress = errors.New("indexing in progress")

	// ErrModelMismatch indicates a stored vector was produced by a different
	// vocabulary than the one currently loaded. The corpus needs a full
	// re-index before the record can be trusted for ranking.
	ErrModelMismatch = errors.New("vocabulary model mismatch")

	// ErrNoVocabulary indicates no vocabulary snapshot has been persisted yet.
	// Ranking is unavailable until the first indexing pass completes.
	ErrNoVocabulary = errors.New("no vocabulary snapshot")

	// ErrScorerUnavailable indicates the optional remote scorer is not
	// configured or unreachable. Ranking degrades to the local TF-IDF path.
	ErrScorerUnavailable = errors.New("remote scorer unavailable")

	// ErrSourceUnavailable indicates the file source (root directory) cannot
	// be enumerated.
	ErrSourceUnavailable = errors.New("file source unavailable")
)
