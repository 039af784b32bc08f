package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure Markdown implements the interface.
var _ driven.Extractor = (*Markdown)(nil)

// Markdown extracts the visible text from CommonMark and GFM documents.
// Formatting syntax is dropped so heading markers and link targets do
// not pollute term statistics.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a markdown extractor.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Extensions returns the extensions this extractor handles.
func (e *Markdown) Extensions() []string {
	return []string{".md", ".markdown", ".mdown"}
}

// Extract parses the document and collects its text nodes.
func (e *Markdown) Extract(_ context.Context, r io.Reader, _ string) (string, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}

	root := e.md.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.FencedCodeBlock:
			writeLines(&sb, node, source)
		case *ast.CodeBlock:
			writeLines(&sb, node, source)
		case *ast.AutoLink:
			sb.Write(node.URL(source))
			sb.WriteByte('\n')
		default:
			if n.Type() == ast.TypeBlock {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walking markdown: %w", err)
	}
	return sb.String(), nil
}

func writeLines(sb *strings.Builder, node ast.Node, source []byte) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
}
