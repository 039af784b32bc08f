package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
	"github.com/harken-labs/pickr-cli/internal/logger"
)

// Ensure RankService implements the interface.
var _ driving.Suggester = (*RankService)(nil)

// DefaultSuggestionLimit is the result count when the query does not set one.
const DefaultSuggestionLimit = 10

// overfetchFactor retrieves more similarity candidates than the final count
// to leave room for multi-signal re-ranking.
const overfetchFactor = 3

// RankService fuses content similarity, usage-history recency and
// path/filename overlap into one ordered suggestion list.
type RankService struct {
	records driven.RecordStore
	vocab   driven.VocabularyStore
	history driven.HistoryStore
	scorer  driven.RemoteScorer

	// now is injectable for history-decay tests.
	now func() time.Time
}

// NewRankService creates a rank service. history and scorer are optional;
// without history the no-history weight split applies to every record, and
// without a scorer only TF-IDF similarity is used.
func NewRankService(
	records driven.RecordStore,
	vocab driven.VocabularyStore,
	history driven.HistoryStore,
	scorer driven.RemoteScorer,
) *RankService {
	return &RankService{
		records: records,
		vocab:   vocab,
		history: history,
		scorer:  scorer,
		now:     time.Now,
	}
}

// Rank returns the top suggestions for a query context.
//
//nolint:gocyclo // Multi-signal pipeline with necessary sequential steps
func (s *RankService) Rank(
	ctx context.Context, query domain.RankQuery,
) ([]domain.Suggestion, domain.RankReason, error) {
	logger.Section("Rank")
	logger.Debug("Context: %q, site: %q, kind: %q", query.Context, query.Site, query.Kind)

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	// 1. Tokenize and vectorize the query under the committed model.
	tokens := domain.Tokenize(query.Context)
	if len(tokens) == 0 {
		logger.Debug("Empty query context, returning no results")
		return nil, domain.RankEmptyQuery, nil
	}

	vocab, err := s.loadVocabulary(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoVocabulary) {
			return nil, domain.RankEmptyIndex, nil
		}
		return nil, domain.RankEmptyIndex, err
	}

	qvec := vocab.Vectorize(tokens)
	if len(qvec) == 0 || isZero(qvec) {
		// Every query token is out of vocabulary: no signal, no guessing.
		logger.Debug("Query has no in-vocabulary terms")
		return nil, domain.RankEmptyQuery, nil
	}

	// 2. Over-fetch similarity candidates to leave room for re-ranking.
	hits, err := s.records.SearchSimilar(ctx, qvec, limit*overfetchFactor, query.Kind)
	if err != nil {
		return nil, domain.RankNoMatch, fmt.Errorf("similarity search: %w", err)
	}
	logger.Debug("Similarity candidates: %d", len(hits))
	if len(hits) == 0 {
		count, countErr := s.records.Count(ctx)
		if countErr == nil && count == 0 {
			return nil, domain.RankEmptyIndex, nil
		}
		return nil, domain.RankNoMatch, nil
	}

	// 3. Aggregate per-site history: occurrence count and last use.
	usage := s.siteUsage(ctx, query.Site)

	// Optional secondary signal: blend auxiliary cosine into the content
	// similarity slot when both sides carry a dense vector.
	queryAux := s.queryAuxVector(ctx, query.Context)

	// 4-6. Fuse signals per candidate.
	queryTokens := domain.TokenSet(tokens)
	now := s.now()
	suggestions := make([]domain.Suggestion, 0, len(hits))

	for _, hit := range hits {
		rec := hit.Record
		if rec.ModelVersion != vocab.Version() {
			// Stale vector from an older vocabulary; the record needs a
			// re-index before its similarity can be trusted.
			logger.Warn("Skipping %s: %v", rec.Path, domain.ErrModelMismatch)
			continue
		}

		similarity := hit.Similarity
		if queryAux != nil && rec.AuxVector != nil {
			auxSim := domain.CosineF32(queryAux, rec.AuxVector)
			similarity = 0.5*similarity + 0.5*auxSim
		}

		pathScore := domain.PathScore(rec.Path, queryTokens)

		summary, hasHistory := usage[rec.Path]
		var boost float64
		if hasHistory {
			boost = domain.HistoryBoost(summary.LastUsed, now)
		}

		score := domain.FuseScore(similarity, boost, pathScore, hasHistory)
		if score <= 0 {
			continue
		}

		suggestions = append(suggestions, domain.Suggestion{
			Record:       rec,
			Score:        score,
			Similarity:   similarity,
			HistoryCount: summary.Count,
		})
	}

	// 7. Stable sort keeps the similarity-search order for equal scores.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	if len(suggestions) == 0 {
		return nil, domain.RankNoMatch, nil
	}
	logger.Info("Suggestions: %d", len(suggestions))
	return suggestions, domain.RankOK, nil
}

// loadVocabulary imports the last committed snapshot. Rank queries always
// score against the committed model, never a mid-rebuild one.
func (s *RankService) loadVocabulary(ctx context.Context) (*domain.Vocabulary, error) {
	snap, err := s.vocab.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	vocab, err := domain.ImportVocabulary(*snap)
	if err != nil {
		return nil, fmt.Errorf("import vocabulary snapshot: %w", err)
	}
	return vocab, nil
}

// siteUsage fetches the per-record history aggregate for a site.
// History failures degrade to content-only ranking.
func (s *RankService) siteUsage(ctx context.Context, site string) map[string]domain.UsageSummary {
	if s.history == nil || site == "" {
		return nil
	}
	summaries, err := s.history.SummarizeBySite(ctx, site)
	if err != nil {
		logger.Warn("History lookup failed for %q: %v (content-only ranking)", site, err)
		return nil
	}
	usage := make(map[string]domain.UsageSummary, len(summaries))
	for _, sum := range summaries {
		usage[sum.RecordPath] = sum
	}
	return usage
}

// queryAuxVector embeds the query with the optional remote scorer.
// Any failure yields nil: signal unavailable, not a ranking failure.
func (s *RankService) queryAuxVector(ctx context.Context, text string) []float32 {
	if s.scorer == nil {
		return nil
	}
	vec, err := s.scorer.Embed(ctx, text)
	if err != nil {
		logger.Warn("Remote scorer query embed failed: %v (TF-IDF only)", err)
		return nil
	}
	return vec
}

// isZero reports whether a vector has zero norm.
func isZero(vec []float64) bool {
	for _, x := range vec {
		if x != 0 {
			return false
		}
	}
	return true
}
