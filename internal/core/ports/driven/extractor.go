package driven

import (
	"context"
	"io"
)

// Extractor produces a text surrogate for one family of file formats.
type Extractor interface {
	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract returns a best-effort text surrogate for the content.
	// Output is bounded by the registry's size cap.
	Extract(ctx context.Context, r io.Reader, path string) (string, error)
}

// ExtractorRegistry selects an extractor by extension and falls back to
// path-derived text when extraction fails or no extractor matches.
//
// Extract never fails: a single unreadable file must not abort an indexing
// batch, so the registry always returns some string, even if it is only
// derived from the file name.
type ExtractorRegistry interface {
	// Extract produces a bounded text surrogate for the file.
	Extract(ctx context.Context, r io.Reader, path string) string
}
