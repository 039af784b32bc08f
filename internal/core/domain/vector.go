package domain

import "math"

// Vectorize converts a token sequence into a fixed-length weighted vector
// using this vocabulary. The vector length always equals Size().
//
// Each in-vocabulary term contributes (tf/maxTf) * idf at its assigned
// dimension; out-of-vocabulary terms are dropped. The result is
// L2-normalized. A vector with no overlapping terms stays all zeros, and an
// empty vocabulary yields a zero-length vector — callers treat both as
// "no signal", not as faults.
func (v *Vocabulary) Vectorize(tokens []string) []float64 {
	vec := make([]float64, len(v.terms))
	if len(v.terms) == 0 {
		return vec
	}

	tf := make(map[int]int)
	maxTf := 1
	for _, tok := range tokens {
		idx, ok := v.index[tok]
		if !ok {
			continue
		}
		tf[idx]++
		if tf[idx] > maxTf {
			maxTf = tf[idx]
		}
	}

	for idx, count := range tf {
		vec[idx] = float64(count) / float64(maxTf) * v.idf[idx]
	}

	normalize(vec)
	return vec
}

// normalize scales a vector to unit Euclidean length in place.
// Zero vectors are left untouched.
func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// Cosine computes the cosine similarity of two vectors.
// Returns 0 when either vector has zero norm or the lengths differ, so
// zero-content and out-of-vocabulary inputs degrade gracefully instead of
// producing NaN.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineF32 is Cosine over float32 slices, used for the dense auxiliary
// vectors produced by the remote scorer.
func CosineF32(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
