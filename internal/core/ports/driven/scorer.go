package driven

import "context"

// RemoteScorer generates dense auxiliary embeddings from text.
// This is an optional service - when nil, only TF-IDF scoring is used.
//
// Any failure from a RemoteScorer is treated as "signal unavailable" by the
// core, never propagated as an indexing or ranking failure.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type RemoteScorer interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts with bounded
	// concurrency and inter-batch pacing to respect external rate limits.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
