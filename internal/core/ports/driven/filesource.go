package driven

import (
	"context"
	"io"
	"time"
)

// FileEntry describes one enumerated file. Size and ModifiedAt come from
// directory metadata so fingerprinting never requires a content read.
type FileEntry struct {
	// Path is the stable identifier (absolute or root-relative path).
	Path string

	// Size is the current byte size.
	Size int64

	// ModifiedAt is the current last-modified timestamp.
	ModifiedAt time.Time
}

// FileSource enumerates a file collection and opens individual files.
// Hidden entries are excluded from enumeration.
type FileSource interface {
	// Validate checks the source is ready (root exists and is readable).
	Validate(ctx context.Context) error

	// Enumerate lists all files recursively with their fingerprints.
	// Order is stable across calls for an unchanged tree.
	Enumerate(ctx context.Context) ([]FileEntry, error)

	// Open returns the content of a previously enumerated file.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Watch emits the paths of files that change until ctx is cancelled.
	// Used to trigger debounced rescans.
	Watch(ctx context.Context) (<-chan string, error)

	// Close releases resources.
	Close() error
}
