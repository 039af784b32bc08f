package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure Plaintext implements the interface.
var _ driven.Extractor = (*Plaintext)(nil)

// Plaintext passes file content through unchanged. It covers plain text
// and the common source and config formats whose raw bytes already read
// as text.
type Plaintext struct{}

// NewPlaintext creates a plain-text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Extensions returns the extensions this extractor handles.
func (e *Plaintext) Extensions() []string {
	return []string{
		".txt", ".log", ".csv", ".tsv",
		".json", ".yaml", ".yml", ".toml", ".ini", ".xml", ".html", ".htm",
		".go", ".py", ".js", ".ts", ".rs", ".java", ".c", ".h", ".cpp",
		".sh", ".sql", ".rb",
	}
}

// Extract reads the content as-is.
func (e *Plaintext) Extract(_ context.Context, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return string(data), nil
}
