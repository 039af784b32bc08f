package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
)

// Vocabulary is the document-frequency-derived term index for one corpus
// snapshot. It assigns every distinct term a dense vector dimension and an
// inverse-document-frequency weight.
//
// A Vocabulary is immutable once built. Any corpus membership change
// requires a full rebuild: index assignment is not append-safe once a
// document is removed, so partial updates are never attempted.
type Vocabulary struct {
	index   map[string]int
	terms   []string
	idf     []float64
	version string
}

// VocabularySnapshot is the portable serialized form of a Vocabulary.
// Terms and IDF are parallel, order-significant slices: Terms[i] owns
// dimension i with weight IDF[i].
type VocabularySnapshot struct {
	Terms   []string  `json:"terms"`
	IDF     []float64 `json:"idf"`
	Version string    `json:"version"`
}

// BuildVocabulary builds a vocabulary from a corpus of token sequences.
//
// Document frequency counts each term once per document regardless of how
// often it repeats. Terms get dense indices in discovery order. The IDF
// weight is ln((N+1)/(df+1)) + 1; the add-one smoothing guarantees a
// strictly positive weight for every term and corpus size.
func BuildVocabulary(corpus [][]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	df := make(map[string]int)

	for _, tokens := range corpus {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = len(v.terms)
				v.terms = append(v.terms, tok)
			}
		}
	}

	n := float64(len(corpus))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.idf[i] = math.Log((n+1)/float64(df[term]+1)) + 1
	}
	v.version = versionOf(v.terms)

	return v
}

// ImportVocabulary restores a vocabulary from a snapshot, reproducing the
// exact index assignments and weights of the exporting instance.
func ImportVocabulary(snap VocabularySnapshot) (*Vocabulary, error) {
	if len(snap.Terms) != len(snap.IDF) {
		return nil, ErrInvalidInput
	}

	v := &Vocabulary{
		index:   make(map[string]int, len(snap.Terms)),
		terms:   append([]string(nil), snap.Terms...),
		idf:     append([]float64(nil), snap.IDF...),
		version: versionOf(snap.Terms),
	}
	for i, term := range v.terms {
		v.index[term] = i
	}
	return v, nil
}

// Export serializes the vocabulary into its portable snapshot form.
func (v *Vocabulary) Export() VocabularySnapshot {
	return VocabularySnapshot{
		Terms:   append([]string(nil), v.terms...),
		IDF:     append([]float64(nil), v.idf...),
		Version: v.version,
	}
}

// Size returns the number of terms, which is also the vector dimension.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Index returns the dimension assigned to a term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// IDF returns the inverse-document-frequency weight for a dimension.
func (v *Vocabulary) IDF(i int) float64 {
	return v.idf[i]
}

// Version identifies this model instance. It is a content hash of the
// ordered term list, so re-importing an exported snapshot yields the same
// version. Vectors are only comparable when produced under equal versions.
func (v *Vocabulary) Version() string {
	return v.version
}

// versionOf hashes the ordered term list.
func versionOf(terms []string) string {
	h := sha256.Sum256([]byte(strings.Join(terms, "\n")))
	return hex.EncodeToString(h[:])
}
