package driving

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// UsageRecorder logs confirmed file selections.
type UsageRecorder interface {
	// RecordSelection appends a usage event. The event timestamp defaults
	// to now and the sequence ID is assigned by the store.
	RecordSelection(ctx context.Context, event domain.UsageEvent) error
}
