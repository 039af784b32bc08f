package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits on punctuation", func(t *testing.T) {
		tokens := Tokenize("Hello, World!")

		assert.Equal(t, []string{"hello", "world"}, tokens)
	})

	t.Run("keeps digit and letter runs together", func(t *testing.T) {
		tokens := Tokenize("CV-2024 v2.pdf")

		assert.Equal(t, []string{"cv", "2024", "v2", "pdf"}, tokens)
	})

	t.Run("splits on underscores", func(t *testing.T) {
		tokens := Tokenize("meeting_notes_final")

		assert.Equal(t, []string{"meeting", "notes", "final"}, tokens)
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("  \t\n "))
		assert.Empty(t, Tokenize("!!!---"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		input := "Quarterly Report 2024 四半期レポート"

		assert.Equal(t, Tokenize(input), Tokenize(input))
	})

	t.Run("emits CJK characters and adjacent bigrams", func(t *testing.T) {
		tokens := Tokenize("日本語")

		assert.Equal(t, []string{"日", "本", "日本", "語", "本語"}, tokens)
	})

	t.Run("breaks bigram chains at non-CJK runes", func(t *testing.T) {
		tokens := Tokenize("日a本")

		assert.Equal(t, []string{"日", "a", "本"}, tokens)
	})

	t.Run("mixes ASCII and CJK", func(t *testing.T) {
		tokens := Tokenize("go言語")

		assert.Equal(t, []string{"go", "言", "語", "言語"}, tokens)
	})

	t.Run("handles hangul", func(t *testing.T) {
		tokens := Tokenize("한국")

		assert.Equal(t, []string{"한", "국", "한국"}, tokens)
	})
}

func TestTokenSet(t *testing.T) {
	t.Run("deduplicates tokens", func(t *testing.T) {
		set := TokenSet([]string{"a", "b", "a", "c", "b"})

		assert.Len(t, set, 3)
		assert.Contains(t, set, "a")
		assert.Contains(t, set, "b")
		assert.Contains(t, set, "c")
	})

	t.Run("empty sequence yields empty set", func(t *testing.T) {
		assert.Empty(t, TokenSet(nil))
	})
}
