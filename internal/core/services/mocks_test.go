package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
)

// stubSource serves a fixed file set from memory.
type stubSource struct {
	mu          sync.Mutex
	entries     []driven.FileEntry
	files       map[string]string
	openErr     map[string]error
	validateErr error
}

func newStubSource() *stubSource {
	return &stubSource{
		files:   make(map[string]string),
		openErr: make(map[string]error),
	}
}

// setFile adds or replaces a file with the given content and mtime.
func (s *stubSource) setFile(path, content string, mtime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = content
	entry := driven.FileEntry{Path: path, Size: int64(len(content)), ModifiedAt: mtime}
	for i := range s.entries {
		if s.entries[i].Path == path {
			s.entries[i] = entry
			return
		}
	}
	s.entries = append(s.entries, entry)
}

// removeFile drops a file from the enumerated set.
func (s *stubSource) removeFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, path)
	for i := range s.entries {
		if s.entries[i].Path == path {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *stubSource) Validate(_ context.Context) error {
	return s.validateErr
}

func (s *stubSource) Enumerate(_ context.Context) ([]driven.FileEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]driven.FileEntry(nil), s.entries...), nil
}

func (s *stubSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openErr[path]; err != nil {
		return nil, err
	}
	content, ok := s.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (s *stubSource) Watch(_ context.Context) (<-chan string, error) {
	return nil, errors.New("watch not supported")
}

func (s *stubSource) Close() error {
	return nil
}

// blockingSource parks Enumerate until released, to hold a pass open.
type blockingSource struct {
	*stubSource
	started   chan struct{}
	release   chan struct{}
	startOnce sync.Once
}

func newBlockingSource() *blockingSource {
	return &blockingSource{
		stubSource: newStubSource(),
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (s *blockingSource) Enumerate(ctx context.Context) ([]driven.FileEntry, error) {
	s.startOnce.Do(func() { close(s.started) })
	<-s.release
	return s.stubSource.Enumerate(ctx)
}

// stubRegistry extracts content verbatim, with path words as fallback.
type stubRegistry struct{}

var pathWordReplacer = strings.NewReplacer("/", " ", ".", " ", "_", " ", "-", " ")

func (stubRegistry) Extract(_ context.Context, r io.Reader, path string) string {
	if r != nil {
		if data, err := io.ReadAll(r); err == nil && len(data) > 0 {
			return string(data)
		}
	}
	return pathWordReplacer.Replace(path)
}

// stubScorer returns canned auxiliary vectors.
type stubScorer struct {
	pingErr  error
	embedErr error
	embed    func(text string) []float32
}

func (s *stubScorer) Embed(_ context.Context, text string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	if s.embed != nil {
		return s.embed(text), nil
	}
	return []float32{1, 0}, nil
}

func (s *stubScorer) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (s *stubScorer) Dimensions() int   { return 2 }
func (s *stubScorer) ModelName() string { return "stub-model" }
func (s *stubScorer) Close() error      { return nil }

func (s *stubScorer) Ping(_ context.Context) error {
	return s.pingErr
}

// stubIndexer counts Run calls for scheduler tests.
type stubIndexer struct {
	mu   sync.Mutex
	runs int
	err  error
}

func (s *stubIndexer) Run(_ context.Context, _ bool) (*domain.IndexReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.IndexReport{}, nil
}

func (s *stubIndexer) Count(_ context.Context) (int, error) {
	return 0, nil
}

func (s *stubIndexer) Status() driving.IndexStatus {
	return driving.IndexStatus{}
}

func (s *stubIndexer) runCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
