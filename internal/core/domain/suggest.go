package domain

import "time"

// Fusion weights for the final ranking score.
//
// With history: content similarity, history boost and path overlap.
// Without history: the history weight is redistributed into content and
// path, so never-used files are not penalized by the full history share.
const (
	WeightContent = 0.50
	WeightHistory = 0.35
	WeightPath    = 0.15

	WeightContentNoHistory = 0.75
	WeightPathNoHistory    = 0.25
)

// History boost decay parameters. The boost decays linearly from 1 to the
// floor over the decay window; old history keeps contributing a small
// signal instead of vanishing.
const (
	HistoryBoostFloor  = 0.1
	HistoryDecayDays   = 90
	historyDecayPerDay = 1.0 / HistoryDecayDays
	hoursPerDay        = 24
)

// HistoryBoost computes the recency-decayed boost for a document whose most
// recent selection was at lastUsed, evaluated at now.
func HistoryBoost(lastUsed, now time.Time) float64 {
	days := now.Sub(lastUsed).Hours() / hoursPerDay
	if days < 0 {
		days = 0
	}
	boost := 1 - days*historyDecayPerDay
	if boost < HistoryBoostFloor {
		return HistoryBoostFloor
	}
	return boost
}

// PathScore computes the path/filename overlap between a document path and
// a query token set: the fraction of path tokens present in the query.
// A path with zero tokens scores 0.
func PathScore(path string, queryTokens map[string]struct{}) float64 {
	pathTokens := Tokenize(path)
	if len(pathTokens) == 0 {
		return 0
	}
	matches := 0
	for _, tok := range pathTokens {
		if _, ok := queryTokens[tok]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(pathTokens))
}

// FuseScore combines content similarity, history boost and path overlap
// into the final ranking score. hasHistory selects the weight split.
func FuseScore(similarity, historyBoost, pathScore float64, hasHistory bool) float64 {
	if hasHistory {
		return WeightContent*similarity + WeightHistory*historyBoost + WeightPath*pathScore
	}
	return WeightContentNoHistory*similarity + WeightPathNoHistory*pathScore
}

// RankQuery is a ranking request.
type RankQuery struct {
	// Context is the free-text query context.
	Context string

	// Site optionally scopes the history signal to a destination site.
	Site string

	// Kind optionally filters candidates by file kind.
	Kind FileKind

	// Limit is the maximum number of suggestions (default applied by the
	// ranking service when <= 0).
	Limit int
}

// RankReason explains an empty result set. "Nothing matched" is a normal
// outcome, not a failure.
type RankReason string

// Rank reason codes.
const (
	// RankOK means candidates were found.
	RankOK RankReason = "ok"

	// RankEmptyQuery means the query produced no usable signal
	// (empty context or every token out of vocabulary).
	RankEmptyQuery RankReason = "empty_query"

	// RankEmptyIndex means no files have been indexed yet.
	RankEmptyIndex RankReason = "empty_index"

	// RankNoMatch means candidates exist but none scored above zero.
	RankNoMatch RankReason = "no_match"
)

// Suggestion is one ranked result.
type Suggestion struct {
	// Record is the suggested file.
	Record FileRecord

	// Score is the fused ranking score.
	Score float64

	// Similarity is the raw content similarity before fusion.
	Similarity float64

	// HistoryCount is the number of past selections for the query site.
	HistoryCount int
}
