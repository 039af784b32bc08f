package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
)

// rescanConfigStore implements driven.RescanConfigStore.
type rescanConfigStore struct {
	store *Store
}

var _ driven.RescanConfigStore = (*rescanConfigStore)(nil)

// LoadRescanConfig returns the stored config, or defaults when unset.
func (s *rescanConfigStore) LoadRescanConfig(ctx context.Context) (domain.RescanConfig, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT enabled, interval_seconds, last_scan FROM rescan_config WHERE id = 1")

	var enabled int
	var intervalSeconds int64
	var lastScan sql.NullString
	if err := row.Scan(&enabled, &intervalSeconds, &lastScan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultRescanConfig(), nil
		}
		return domain.RescanConfig{}, fmt.Errorf("scanning rescan config: %w", err)
	}

	return domain.RescanConfig{
		Enabled:  enabled == 1,
		Interval: time.Duration(intervalSeconds) * time.Second,
		LastScan: parseNullableTime(lastScan),
	}, nil
}

// SaveRescanConfig replaces the stored config.
func (s *rescanConfigStore) SaveRescanConfig(ctx context.Context, cfg domain.RescanConfig) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO rescan_config (id, enabled, interval_seconds, last_scan)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			enabled = excluded.enabled,
			interval_seconds = excluded.interval_seconds,
			last_scan = excluded.last_scan
	`, boolToInt(cfg.Enabled), int64(cfg.Interval.Seconds()),
		formatNullableTime(cfg.LastScan))

	if err != nil {
		return fmt.Errorf("saving rescan config: %w", err)
	}
	return nil
}
