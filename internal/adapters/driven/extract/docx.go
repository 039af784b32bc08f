package extract

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure Docx implements the interface.
var _ driven.Extractor = (*Docx)(nil)

var (
	paragraphEndPattern = regexp.MustCompile(`</w:p>`)
	xmlTagPattern       = regexp.MustCompile(`<[^>]+>`)
)

// Docx extracts plain text from Word documents.
type Docx struct{}

// NewDocx creates a docx extractor.
func NewDocx() *Docx {
	return &Docx{}
}

// Extensions returns the extensions this extractor handles.
func (e *Docx) Extensions() []string {
	return []string{".docx"}
}

// Extract reads the document into memory and strips the WordprocessingML
// markup from its body, keeping paragraph breaks as newlines.
func (e *Docx) Extract(_ context.Context, r io.Reader, path string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEndPattern.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no extractable text in %s", path)
	}
	return content, nil
}
