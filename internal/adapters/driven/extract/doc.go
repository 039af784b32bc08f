// Package extract converts file content into plain-text surrogates for
// indexing. A registry dispatches on file extension to format-specific
// extractors and falls back to path-derived text when content cannot be
// read, so one broken file never aborts a scan.
package extract
