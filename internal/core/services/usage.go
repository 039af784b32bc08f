package services

import (
	"context"
	"fmt"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
	"github.com/harken-labs/pickr-cli/internal/logger"
)

// Ensure UsageService implements the interface.
var _ driving.UsageRecorder = (*UsageService)(nil)

// UsageService appends confirmed selections to the history log.
type UsageService struct {
	history driven.HistoryStore
}

// NewUsageService creates a usage recorder.
func NewUsageService(history driven.HistoryStore) *UsageService {
	return &UsageService{history: history}
}

// RecordSelection appends a usage event. The store assigns the sequence ID;
// SelectedAt defaults to now when unset.
func (s *UsageService) RecordSelection(ctx context.Context, event domain.UsageEvent) error {
	if event.RecordPath == "" || event.Site == "" {
		return fmt.Errorf("%w: record path and site are required", domain.ErrInvalidInput)
	}
	if event.SelectedAt.IsZero() {
		event.SelectedAt = time.Now()
	}

	if err := s.history.Append(ctx, &event); err != nil {
		return fmt.Errorf("append usage event: %w", err)
	}
	logger.Debug("Recorded selection of %s for site %s", event.RecordPath, event.Site)
	return nil
}
