package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
)

// checkInterval is how often the scheduler evaluates the rescan config.
const checkInterval = 1 * time.Minute

// Scheduler triggers periodic rescans without user action. It reloads the
// rescan config on every tick, so enable/disable and interval changes made
// through the store take effect without a restart.
type Scheduler struct {
	rescan  driven.RescanConfigStore
	indexer driving.Indexer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler.
func NewScheduler(rescan driven.RescanConfigStore, indexer driving.Indexer) *Scheduler {
	return &Scheduler{
		rescan:  rescan,
		indexer: indexer,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	// Check immediately on startup, then on a fixed tick.
	s.runIfDue(ctx)

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.runIfDue(ctx)
		}
	}
}

// Stop gracefully shuts down the scheduler and waits for an in-flight
// rescan to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// TriggerRescan runs an indexing pass immediately, regardless of the
// configured interval. Used by the filesystem watcher after change bursts.
func (s *Scheduler) TriggerRescan(ctx context.Context) {
	s.runRescan(ctx)
}

// runIfDue checks the config and runs a rescan when the interval elapsed.
func (s *Scheduler) runIfDue(ctx context.Context) {
	cfg, err := s.rescan.LoadRescanConfig(ctx)
	if err != nil {
		log.Printf("scheduler: failed to load rescan config: %v", err)
		return
	}
	if !cfg.Due(time.Now()) {
		return
	}
	s.runRescan(ctx)
}

// runRescan executes one incremental pass in the background.
// A pass already in flight is not an error; the next tick retries.
func (s *Scheduler) runRescan(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		report, err := s.indexer.Run(ctx, false)
		if err != nil {
			if errors.Is(err, domain.ErrIndexInProgress) {
				return
			}
			log.Printf("scheduler: rescan failed: %v", err)
			return
		}
		if !report.NoOp() {
			log.Printf("scheduler: rescan %s: %d added/modified, %d deleted",
				report.ScanID, report.AddedOrModified, report.Deleted)
		}
	}()
}
