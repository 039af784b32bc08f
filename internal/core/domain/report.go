package domain

import "time"

// IndexReport summarizes one indexing pass.
type IndexReport struct {
	// ScanID uniquely identifies the pass.
	ScanID string

	// Full indicates a non-incremental pass (store cleared first).
	Full bool

	// AddedOrModified counts files that were (re-)extracted and vectorized
	// because they were new or their fingerprint changed.
	AddedOrModified int

	// Unchanged counts files whose fingerprints matched the stored records.
	Unchanged int

	// Deleted counts records removed because the file was no longer observed.
	Deleted int

	// TotalIndexed is the record count after the pass.
	TotalIndexed int

	// Started and Finished bound the pass.
	Started  time.Time
	Finished time.Time
}

// NoOp reports whether the pass short-circuited with no work to do.
func (r IndexReport) NoOp() bool {
	return r.AddedOrModified == 0 && r.Deleted == 0
}
