package extract

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

const (
	// maxInputBytes bounds how much raw content an extractor may read.
	maxInputBytes = 4 * 1024 * 1024

	// maxTextBytes bounds the extracted text handed back to the indexer.
	maxTextBytes = 64 * 1024
)

// Registry selects an extractor by file extension.
type Registry struct {
	byExtension map[string]driven.Extractor
	fallback    driven.Extractor
}

// NewRegistry creates a registry over the given extractors. Later
// extractors win extension conflicts. The fallback handles every
// extension no extractor claims.
func NewRegistry(fallback driven.Extractor, extractors ...driven.Extractor) *Registry {
	byExtension := make(map[string]driven.Extractor)
	for _, extractor := range extractors {
		for _, ext := range extractor.Extensions() {
			byExtension[strings.ToLower(ext)] = extractor
		}
	}
	return &Registry{byExtension: byExtension, fallback: fallback}
}

// NewDefaultRegistry wires the standard extractor set.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewGeneric(),
		NewMarkdown(),
		NewPDF(),
		NewDocx(),
		NewPlaintext(),
	)
}

// Extract produces a bounded text surrogate for the file. It never
// fails: when content extraction errors out, or the reader is nil, the
// result is derived from the path alone.
func (r *Registry) Extract(ctx context.Context, reader io.Reader, path string) string {
	extractor := r.fallback
	if e, ok := r.byExtension[strings.ToLower(filepath.Ext(path))]; ok {
		extractor = e
	}

	if reader != nil {
		text, err := extractor.Extract(ctx, io.LimitReader(reader, maxInputBytes), path)
		if err == nil && strings.TrimSpace(text) != "" {
			return capText(text)
		}
		if err != nil {
			logger.Warn("extract: %s: %v, using path text", path, err)
		}
	}

	return pathText(path)
}

// capText truncates text to maxTextBytes without splitting a rune.
func capText(text string) string {
	if len(text) <= maxTextBytes {
		return text
	}
	cut := maxTextBytes
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// pathText turns a path into searchable words: separators and
// punctuation become spaces so "projects/cv-2024.pdf" still matches a
// query for "cv".
func pathText(path string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, path)
}
