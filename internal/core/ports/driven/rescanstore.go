package driven

import (
	"context"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// RescanConfigStore persists the rescan configuration singleton.
type RescanConfigStore interface {
	// LoadRescanConfig returns the stored config, or the defaults when
	// nothing has been saved yet.
	LoadRescanConfig(ctx context.Context) (domain.RescanConfig, error)

	// SaveRescanConfig replaces the stored config.
	SaveRescanConfig(ctx context.Context, cfg domain.RescanConfig) error
}
