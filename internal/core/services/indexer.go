package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
	"github.com/harken-labs/pickr-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.Indexer = (*IndexService)(nil)

// PreviewLimit bounds the stored text surrogate per file. The preview is
// also the corpus text for unchanged files on vocabulary rebuilds, so it
// must be large enough to carry a useful term distribution.
const PreviewLimit = 8 * 1024

// scorerBatchSize bounds how many texts go to the remote scorer per batch.
const scorerBatchSize = 16

// IndexService reconciles the enumerated file set against the record store
// without redoing unnecessary work. Fingerprint-matched files skip text
// extraction entirely; their stored previews feed the vocabulary rebuild.
type IndexService struct {
	source    driven.FileSource
	extractor driven.ExtractorRegistry
	records   driven.RecordStore
	vocab     driven.VocabularyStore
	rescan    driven.RescanConfigStore
	scorer    driven.RemoteScorer

	mu      sync.Mutex
	running bool
	status  driving.IndexStatus
}

// NewIndexService creates an index service. The scorer is optional - when
// nil, records carry no auxiliary vectors.
func NewIndexService(
	source driven.FileSource,
	extractor driven.ExtractorRegistry,
	records driven.RecordStore,
	vocab driven.VocabularyStore,
	rescan driven.RescanConfigStore,
	scorer driven.RemoteScorer,
) *IndexService {
	return &IndexService{
		source:    source,
		extractor: extractor,
		records:   records,
		vocab:     vocab,
		rescan:    rescan,
		scorer:    scorer,
	}
}

// pendingFile is a changed-or-new file between extraction and vectorization.
type pendingFile struct {
	entry   driven.FileEntry
	preview string
	tokens  []string
	aux     []float32
}

// Run executes one indexing pass.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *IndexService) Run(ctx context.Context, full bool) (*domain.IndexReport, error) {
	if !s.begin() {
		return nil, domain.ErrIndexInProgress
	}
	defer s.end()

	report := &domain.IndexReport{
		ScanID:  uuid.New().String(),
		Full:    full,
		Started: time.Now(),
	}
	s.setStatus(driving.IndexStatus{ScanID: report.ScanID, Running: true})

	logger.Section("Index Pass")
	logger.Info("Scan %s (full=%t)", report.ScanID, full)

	// 1. Enumerate current files with fingerprints.
	if err := s.source.Validate(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	entries, err := s.source.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate files: %w", err)
	}
	logger.Debug("Enumerated %d files", len(entries))

	// Full pass: clear the store and treat every file as changed.
	if full {
		if err := s.records.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear records: %w", err)
		}
	}

	stored, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	// 2. Partition into unchanged, changed-or-new and deleted.
	existing := make(map[string]domain.FileRecord, len(stored))
	for _, rec := range stored {
		existing[rec.Path] = rec
	}

	var unchanged []domain.FileRecord
	var changed []pendingFile
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		seen[entry.Path] = struct{}{}
		rec, ok := existing[entry.Path]
		current := domain.Fingerprint{Size: entry.Size, ModifiedAt: entry.ModifiedAt}
		if ok && rec.Fingerprint().Equal(current) {
			unchanged = append(unchanged, rec)
			continue
		}
		changed = append(changed, pendingFile{entry: entry})
	}

	// 3. Delete records whose files are no longer observed.
	for _, rec := range stored {
		if _, ok := seen[rec.Path]; ok {
			continue
		}
		if err := s.records.Delete(ctx, rec.Path); err != nil {
			return nil, fmt.Errorf("delete record %s: %w", rec.Path, err)
		}
		report.Deleted++
	}

	report.AddedOrModified = len(changed)
	report.Unchanged = len(unchanged)

	// Short-circuit: nothing changed, nothing deleted, vectors stay valid.
	if len(changed) == 0 && report.Deleted == 0 {
		logger.Info("No changes detected, skipping rebuild")
		return s.finish(ctx, report)
	}

	// 4. Extract text only for changed-or-new files.
	total := len(changed) + len(unchanged)
	s.setStatus(driving.IndexStatus{ScanID: report.ScanID, Running: true, Total: total})

	for i := range changed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed[i].preview = s.extractPreview(ctx, changed[i].entry)
		changed[i].tokens = domain.Tokenize(changed[i].preview)
		s.progress(i+1, total, "extract")
	}

	// Optional secondary embeddings for changed files. Failures degrade to
	// TF-IDF only, never abort the pass.
	s.scoreChanged(ctx, changed)

	// 5. Rebuild the vocabulary over the union of changed texts and the
	// stored previews of unchanged files. Any membership change invalidates
	// index assignment for the whole corpus.
	corpus := make([][]string, 0, total)
	unchangedTokens := make([][]string, len(unchanged))
	for i, rec := range unchanged {
		unchangedTokens[i] = domain.Tokenize(rec.Preview)
		corpus = append(corpus, unchangedTokens[i])
	}
	for i := range changed {
		corpus = append(corpus, changed[i].tokens)
	}

	vocab := domain.BuildVocabulary(corpus)
	logger.Info("Vocabulary rebuilt: %d terms, version %.12s", vocab.Size(), vocab.Version())

	// 6. Re-vectorize every document, changed and unchanged, against the
	// rebuilt model. Skipping unchanged files here would silently
	// desynchronize their vectors from the current dimension assignment.
	now := time.Now()
	processed := len(changed)

	for i := range unchanged {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := unchanged[i]
		rec.Vector = vocab.Vectorize(unchangedTokens[i])
		rec.ModelVersion = vocab.Version()
		rec.IndexedAt = now
		if err := s.records.Save(ctx, &rec); err != nil {
			return nil, fmt.Errorf("save record %s: %w", rec.Path, err)
		}
		processed++
		s.progress(processed, total, "vectorize")
	}

	for i := range changed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := changed[i].entry
		rec := domain.FileRecord{
			Path:         entry.Path,
			Name:         filepath.Base(entry.Path),
			Kind:         domain.KindForPath(entry.Path),
			Size:         entry.Size,
			ModifiedAt:   entry.ModifiedAt,
			Vector:       vocab.Vectorize(changed[i].tokens),
			AuxVector:    changed[i].aux,
			Preview:      changed[i].preview,
			ModelVersion: vocab.Version(),
			IndexedAt:    now,
		}
		if err := s.records.Save(ctx, &rec); err != nil {
			return nil, fmt.Errorf("save record %s: %w", rec.Path, err)
		}
	}

	// 7. Persist the snapshot only after all re-vectorization completed, so
	// a crash mid-pass cannot leave a vocabulary/vector mismatch on disk.
	if err := s.vocab.SaveSnapshot(ctx, vocab.Export()); err != nil {
		return nil, fmt.Errorf("save vocabulary snapshot: %w", err)
	}

	return s.finish(ctx, report)
}

// Count returns the number of indexed records.
func (s *IndexService) Count(ctx context.Context) (int, error) {
	return s.records.Count(ctx)
}

// Status returns progress of the in-flight pass, if any.
func (s *IndexService) Status() driving.IndexStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// extractPreview opens a file and produces its bounded text surrogate.
// Extraction failures fall back to path-derived text; a single unreadable
// file never aborts the batch.
func (s *IndexService) extractPreview(ctx context.Context, entry driven.FileEntry) string {
	rc, err := s.source.Open(ctx, entry.Path)
	if err != nil {
		logger.Warn("Open %s failed: %v (falling back to name)", entry.Path, err)
		return s.extractor.Extract(ctx, nil, entry.Path)
	}
	defer rc.Close()

	text := s.extractor.Extract(ctx, rc, entry.Path)
	if len(text) > PreviewLimit {
		text = text[:PreviewLimit]
	}
	return text
}

// scoreChanged fills auxiliary vectors via the optional remote scorer,
// in bounded batches. Errors are logged and the pass continues.
func (s *IndexService) scoreChanged(ctx context.Context, changed []pendingFile) {
	if s.scorer == nil || len(changed) == 0 {
		return
	}
	if err := s.scorer.Ping(ctx); err != nil {
		logger.Warn("Remote scorer unreachable: %v (skipping auxiliary vectors)", err)
		return
	}

	for start := 0; start < len(changed); start += scorerBatchSize {
		end := start + scorerBatchSize
		if end > len(changed) {
			end = len(changed)
		}
		texts := make([]string, 0, end-start)
		for _, p := range changed[start:end] {
			texts = append(texts, p.preview)
		}

		vectors, err := s.scorer.EmbedBatch(ctx, texts)
		if err != nil {
			logger.Warn("Remote scorer batch failed: %v (continuing without)", err)
			return
		}
		for i, vec := range vectors {
			changed[start+i].aux = vec
		}
	}
}

// finish stamps the report, updates the rescan timestamp and clears status.
func (s *IndexService) finish(ctx context.Context, report *domain.IndexReport) (*domain.IndexReport, error) {
	count, err := s.records.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	report.TotalIndexed = count
	report.Finished = time.Now()

	if err := s.touchLastScan(ctx, report.Finished); err != nil {
		// Best effort: a failed timestamp update only affects scheduling.
		logger.Warn("Update last-scan timestamp failed: %v", err)
	}

	logger.Info("Index pass done: %d added/modified, %d unchanged, %d deleted, %d total",
		report.AddedOrModified, report.Unchanged, report.Deleted, report.TotalIndexed)
	return report, nil
}

// touchLastScan records when the pass finished.
func (s *IndexService) touchLastScan(ctx context.Context, finished time.Time) error {
	if s.rescan == nil {
		return nil
	}
	cfg, err := s.rescan.LoadRescanConfig(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	cfg.LastScan = finished
	return s.rescan.SaveRescanConfig(ctx, cfg)
}

// begin acquires the indexing-in-progress flag.
func (s *IndexService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

// end releases the flag and clears status.
func (s *IndexService) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.status = driving.IndexStatus{}
}

// setStatus replaces the tracked status.
func (s *IndexService) setStatus(status driving.IndexStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// progress updates processed counts and reports chunked progress.
func (s *IndexService) progress(done, total int, what string) {
	s.mu.Lock()
	s.status.Processed = done
	s.mu.Unlock()
	if done%25 == 0 || done == total {
		logger.Progress(done, total, what)
	}
}
