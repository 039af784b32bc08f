package driving

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// Suggester produces ranked file suggestions for a query context.
type Suggester interface {
	// Rank returns the top suggestions for the query, with a reason code
	// explaining empty result sets. "Nothing matched" is a normal outcome,
	// not an error.
	Rank(ctx context.Context, query domain.RankQuery) ([]domain.Suggestion, domain.RankReason, error)
}
