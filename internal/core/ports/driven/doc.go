// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileSource: Enumerates files with fingerprints and opens content
//   - ExtractorRegistry: Produces a text surrogate for any file
//   - RecordStore: File record persistence and similarity search
//   - VocabularyStore: Vocabulary snapshot persistence
//   - HistoryStore: Append-only usage history, indexed by site
//   - RescanConfigStore: Rescan settings persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RemoteScorer: Secondary dense embeddings. Failures degrade to the
//     local TF-IDF scoring path, never abort indexing or ranking.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
