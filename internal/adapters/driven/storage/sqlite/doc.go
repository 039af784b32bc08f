// Package sqlite provides durable storage for file records, the vocabulary
// snapshot, usage history and rescan configuration, backed by a single
// SQLite database with embedded schema migrations.
package sqlite
