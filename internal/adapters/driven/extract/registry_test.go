package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExtract(t *testing.T) {
	ctx := context.Background()
	registry := NewDefaultRegistry()

	t.Run("plain text passes through", func(t *testing.T) {
		text := registry.Extract(ctx, strings.NewReader("meeting notes for tuesday"), "/docs/notes.txt")

		assert.Equal(t, "meeting notes for tuesday", text)
	})

	t.Run("nil reader falls back to path words", func(t *testing.T) {
		text := registry.Extract(ctx, nil, "/projects/cv-2024.pdf")

		assert.Contains(t, text, "cv")
		assert.Contains(t, text, "2024")
		assert.Contains(t, text, "projects")
	})

	t.Run("invalid pdf falls back to path words", func(t *testing.T) {
		text := registry.Extract(ctx, strings.NewReader("this is not a pdf"), "/docs/scan.pdf")

		assert.Contains(t, text, "scan")
	})

	t.Run("invalid docx falls back to path words", func(t *testing.T) {
		text := registry.Extract(ctx, strings.NewReader("this is not a zip"), "/docs/letter.docx")

		assert.Contains(t, text, "letter")
	})

	t.Run("binary content without a dedicated extractor falls back", func(t *testing.T) {
		binary := string([]byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01, 0x02})

		text := registry.Extract(ctx, strings.NewReader(binary), "/pics/holiday.png")

		assert.Contains(t, text, "holiday")
		assert.NotContains(t, text, "\x00")
	})

	t.Run("textual content without a dedicated extractor passes through", func(t *testing.T) {
		text := registry.Extract(ctx, strings.NewReader("plain readable words"), "/misc/readme.unknown")

		assert.Equal(t, "plain readable words", text)
	})

	t.Run("whitespace-only extraction falls back to path words", func(t *testing.T) {
		text := registry.Extract(ctx, strings.NewReader("   \n\t  "), "/docs/empty.txt")

		assert.Contains(t, text, "empty")
	})

	t.Run("output is capped", func(t *testing.T) {
		huge := strings.Repeat("word ", maxTextBytes)

		text := registry.Extract(ctx, strings.NewReader(huge), "/docs/huge.txt")

		assert.LessOrEqual(t, len(text), maxTextBytes)
	})
}

func TestCapText(t *testing.T) {
	t.Run("short text is untouched", func(t *testing.T) {
		assert.Equal(t, "short", capText("short"))
	})

	t.Run("cut lands on a rune boundary", func(t *testing.T) {
		text := strings.Repeat("日", maxTextBytes)

		capped := capText(text)
		assert.LessOrEqual(t, len(capped), maxTextBytes)
		for _, r := range capped {
			assert.Equal(t, '日', r)
		}
	})
}

func TestPathText(t *testing.T) {
	t.Run("separators and punctuation become spaces", func(t *testing.T) {
		text := pathText("/home/user/tax_return-2025.final.pdf")

		for _, want := range []string{"home", "user", "tax", "return", "2025", "final", "pdf"} {
			assert.Contains(t, strings.Fields(text), want)
		}
	})
}

func TestMarkdownExtractor(t *testing.T) {
	ctx := context.Background()
	extractor := NewMarkdown()

	t.Run("strips formatting but keeps text", func(t *testing.T) {
		source := "# Quarterly Review\n\nRevenue was *up* by [12 percent](https://example.com/report).\n\n- item one\n- item two\n"

		text, err := extractor.Extract(ctx, strings.NewReader(source), "review.md")
		require.NoError(t, err)

		assert.Contains(t, text, "Quarterly Review")
		assert.Contains(t, text, "up")
		assert.Contains(t, text, "12 percent")
		assert.Contains(t, text, "item one")
		assert.NotContains(t, text, "# ")
		assert.NotContains(t, text, "](")
	})

	t.Run("keeps fenced code content", func(t *testing.T) {
		source := "Intro\n\n```go\nfunc main() {}\n```\n"

		text, err := extractor.Extract(ctx, strings.NewReader(source), "snippet.md")
		require.NoError(t, err)

		assert.Contains(t, text, "func main()")
		assert.NotContains(t, text, "```")
	})
}

func TestGenericExtractor(t *testing.T) {
	ctx := context.Background()
	extractor := NewGeneric()

	t.Run("accepts utf-8 text", func(t *testing.T) {
		text, err := extractor.Extract(ctx, strings.NewReader("héllo wörld"), "/x")
		require.NoError(t, err)
		assert.Equal(t, "héllo wörld", text)
	})

	t.Run("rejects NUL bytes", func(t *testing.T) {
		_, err := extractor.Extract(ctx, strings.NewReader("abc\x00def"), "/x")
		assert.Error(t, err)
	})

	t.Run("rejects invalid utf-8", func(t *testing.T) {
		_, err := extractor.Extract(ctx, strings.NewReader("\xff\xfe\xfd"), "/x")
		assert.Error(t, err)
	})
}
