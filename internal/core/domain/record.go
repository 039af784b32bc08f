package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// FileKind is a coarse content classifier derived from the file extension.
// It is used as the optional type filter on similarity search and ranking.
type FileKind string

// Known file kinds.
const (
	KindDocument     FileKind = "document"
	KindImage        FileKind = "image"
	KindSpreadsheet  FileKind = "spreadsheet"
	KindPresentation FileKind = "presentation"
	KindArchive      FileKind = "archive"
	KindCode         FileKind = "code"
	KindOther        FileKind = "other"

	// KindAny matches every kind when used as a filter.
	KindAny FileKind = ""
)

// kindByExtension maps lower-case extensions to kinds.
var kindByExtension = map[string]FileKind{
	".txt": KindDocument, ".md": KindDocument, ".pdf": KindDocument,
	".doc": KindDocument, ".docx": KindDocument, ".rtf": KindDocument,
	".odt": KindDocument, ".eml": KindDocument, ".html": KindDocument,

	".png": KindImage, ".jpg": KindImage, ".jpeg": KindImage,
	".gif": KindImage, ".webp": KindImage, ".svg": KindImage,
	".bmp": KindImage, ".heic": KindImage,

	".csv": KindSpreadsheet, ".tsv": KindSpreadsheet,
	".xls": KindSpreadsheet, ".xlsx": KindSpreadsheet, ".ods": KindSpreadsheet,

	".ppt": KindPresentation, ".pptx": KindPresentation, ".odp": KindPresentation,

	".zip": KindArchive, ".tar": KindArchive, ".gz": KindArchive,
	".rar": KindArchive, ".7z": KindArchive,

	".go": KindCode, ".py": KindCode, ".js": KindCode, ".ts": KindCode,
	".c": KindCode, ".cpp": KindCode, ".h": KindCode, ".java": KindCode,
	".rb": KindCode, ".rs": KindCode, ".sh": KindCode, ".sql": KindCode,
	".json": KindCode, ".yaml": KindCode, ".yml": KindCode, ".toml": KindCode,
	".xml": KindCode,
}

// KindForPath classifies a path by its extension.
func KindForPath(path string) FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindOther
}

// Matches reports whether a record kind passes this filter.
// The zero value (KindAny) matches everything.
func (k FileKind) Matches(other FileKind) bool {
	return k == KindAny || k == other
}

// Fingerprint is the cheap change-detection pair for a file.
// Two files with equal fingerprints are assumed to have identical content.
type Fingerprint struct {
	// Size is the file size in bytes.
	Size int64

	// ModifiedAt is the last-modification timestamp.
	ModifiedAt time.Time
}

// Equal reports whether two fingerprints describe the same file version.
// Timestamps are compared at second granularity so that round-tripping
// through storage does not produce spurious changes.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Size == other.Size && f.ModifiedAt.Unix() == other.ModifiedAt.Unix()
}

// FileRecord is an indexed file with the metadata and vectors needed
// for change detection and ranking.
type FileRecord struct {
	// Path is the stable identifier and unique key.
	Path string

	// Name is the display name (base name of the path).
	Name string

	// Kind is the coarse content classifier.
	Kind FileKind

	// Size is the byte size at indexing time.
	Size int64

	// ModifiedAt is the last-modified timestamp at indexing time.
	// Together with Size it forms the stored fingerprint.
	ModifiedAt time.Time

	// Vector is the TF-IDF content vector. Its length equals the term count
	// of the vocabulary identified by ModelVersion.
	Vector []float64

	// AuxVector is an optional dense vector from the remote scorer.
	// Nil when no scorer is configured or the scorer failed for this file.
	AuxVector []float32

	// Preview is a bounded text surrogate of the content. It doubles as the
	// corpus text for unchanged files when the vocabulary is rebuilt.
	Preview string

	// ModelVersion identifies the vocabulary that produced Vector.
	ModelVersion string

	// IndexedAt is when the record was last written.
	IndexedAt time.Time
}

// Fingerprint returns the stored change-detection pair.
func (r *FileRecord) Fingerprint() Fingerprint {
	return Fingerprint{Size: r.Size, ModifiedAt: r.ModifiedAt}
}
