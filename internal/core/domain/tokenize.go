package domain

import (
	"strings"
	"unicode"
)

// cjkTables covers the scripts tokenized character-by-character.
var cjkTables = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

// isCJK reports whether a rune belongs to a script without whitespace
// word boundaries.
func isCJK(r rune) bool {
	for _, table := range cjkTables {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}

// Tokenize turns raw text into a normalized token sequence.
//
// Input is lower-cased. Runs of ASCII alphanumerics become single tokens.
// Each CJK character becomes a token of its own, and every pair of adjacent
// CJK characters additionally becomes a bigram token, approximating word
// boundaries for languages without whitespace segmentation.
//
// Tokenization is deterministic: the same input always yields the same
// sequence. Empty input yields an empty sequence.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	var prev rune // previous CJK rune, 0 when the run was broken

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r < 128 && (unicode.IsDigit(r) || unicode.IsLower(r)):
			word.WriteRune(r)
			prev = 0

		case isCJK(r):
			flush()
			tokens = append(tokens, string(r))
			if prev != 0 {
				tokens = append(tokens, string(prev)+string(r))
			}
			prev = r

		default:
			flush()
			prev = 0
		}
	}
	flush()

	return tokens
}

// TokenSet returns the distinct tokens of a sequence as a set.
// Document frequency counts each term once per document.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
