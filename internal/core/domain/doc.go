// Package domain defines the core business entities for Pickr.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileRecord: An indexed file with its fingerprint and content vector
//   - Vocabulary: The TF-IDF term index built over the whole corpus
//   - UsageEvent: An append-only record of a confirmed file selection
//   - RescanConfig: Automatic rescan settings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
