package memory

import (
	"context"
	"sync"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Events are kept per site, append-only.
type HistoryStore struct {
	mu     sync.RWMutex
	nextID int64
	bySite map[string][]domain.UsageEvent
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		nextID: 1,
		bySite: make(map[string][]domain.UsageEvent),
	}
}

// Append writes a new event and assigns its sequence ID.
func (s *HistoryStore) Append(_ context.Context, event *domain.UsageEvent) error {
	if event == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.nextID
	s.nextID++
	s.bySite[event.Site] = append(s.bySite[event.Site], *event)
	return nil
}

// ListBySite returns events for a site, most recent first.
func (s *HistoryStore) ListBySite(_ context.Context, site string, limit int) ([]domain.UsageEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.bySite[site]
	result := make([]domain.UsageEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		result = append(result, events[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// SummarizeBySite aggregates count and last use per referenced record.
func (s *HistoryStore) SummarizeBySite(_ context.Context, site string) ([]domain.UsageSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPath := make(map[string]*domain.UsageSummary)
	var order []string
	for _, event := range s.bySite[site] {
		sum, ok := byPath[event.RecordPath]
		if !ok {
			sum = &domain.UsageSummary{RecordPath: event.RecordPath}
			byPath[event.RecordPath] = sum
			order = append(order, event.RecordPath)
		}
		sum.Count++
		if event.SelectedAt.After(sum.LastUsed) {
			sum.LastUsed = event.SelectedAt
		}
	}

	result := make([]domain.UsageSummary, 0, len(order))
	for _, path := range order {
		result = append(result, *byPath[path])
	}
	return result, nil
}
