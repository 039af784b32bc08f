package extract

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure Generic implements the interface.
var _ driven.Extractor = (*Generic)(nil)

// sniffLimit is how many leading bytes decide text versus binary.
const sniffLimit = 8 * 1024

// Generic handles files with no dedicated extractor. Content that looks
// like text passes through; binary content is rejected so the registry
// falls back to path-derived text.
type Generic struct{}

// NewGeneric creates the fallback extractor.
func NewGeneric() *Generic {
	return &Generic{}
}

// Extensions returns nil: the generic extractor is never registered for
// a specific extension, only installed as the registry fallback.
func (e *Generic) Extensions() []string {
	return nil
}

// Extract returns the content when it sniffs as text.
func (e *Generic) Extract(_ context.Context, r io.Reader, path string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	if !looksLikeText(data) {
		return "", fmt.Errorf("%s: binary content", path)
	}
	return string(data), nil
}

// looksLikeText reports whether the leading bytes decode as UTF-8
// without NUL bytes.
func looksLikeText(data []byte) bool {
	if len(data) > sniffLimit {
		data = data[:sniffLimit]
		// Drop a rune the cut may have split.
		for len(data) > 0 && data[len(data)-1]&0xC0 == 0x80 {
			data = data[:len(data)-1]
		}
		if len(data) > 0 && data[len(data)-1] >= 0x80 {
			data = data[:len(data)-1]
		}
	}
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(data)
}
