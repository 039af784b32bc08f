package domain

import "time"

// RescanConfig holds the automatic rescan settings. It is a process-wide
// singleton record; updates replace the whole record, so there is no
// partial-update hazard between the CLI and the scheduler.
type RescanConfig struct {
	// Enabled is the master switch for scheduled rescans.
	Enabled bool

	// Interval defines how often a rescan runs.
	Interval time.Duration

	// LastScan is when the last indexing pass finished.
	LastScan time.Time
}

// DefaultRescanConfig returns sensible defaults: hourly rescans, enabled.
func DefaultRescanConfig() RescanConfig {
	return RescanConfig{
		Enabled:  true,
		Interval: 1 * time.Hour,
	}
}

// Due reports whether a rescan should run at the given time.
func (c RescanConfig) Due(now time.Time) bool {
	if !c.Enabled || c.Interval <= 0 {
		return false
	}
	if c.LastScan.IsZero() {
		return true
	}
	return !now.Before(c.LastScan.Add(c.Interval))
}
