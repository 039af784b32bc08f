package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

// newTestStore opens a store in a temp directory and closes it with the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestStoreMigrations(t *testing.T) {
	t.Run("opening twice is idempotent", func(t *testing.T) {
		dir := t.TempDir()

		first, err := NewStore(dir)
		require.NoError(t, err)
		require.NoError(t, first.Close())

		second, err := NewStore(dir)
		require.NoError(t, err)
		require.NoError(t, second.Close())
	})
}

func TestSQLiteRecordStore(t *testing.T) {
	ctx := context.Background()

	sample := func(path string) *domain.FileRecord {
		return &domain.FileRecord{
			Path:         path,
			Name:         "cv.pdf",
			Kind:         domain.KindDocument,
			Size:         2048,
			ModifiedAt:   time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
			Vector:       []float64{0.6, 0.8, 0},
			AuxVector:    []float32{0.1, 0.2},
			Preview:      "resume curriculum vitae",
			ModelVersion: "v1",
			IndexedAt:    time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		}
	}

	t.Run("save and get round trip", func(t *testing.T) {
		store := newTestStore(t)
		records := store.RecordStore()
		rec := sample("/docs/cv.pdf")

		require.NoError(t, records.Save(ctx, rec))

		got, err := records.Get(ctx, "/docs/cv.pdf")
		require.NoError(t, err)
		assert.Equal(t, rec.Name, got.Name)
		assert.Equal(t, rec.Kind, got.Kind)
		assert.Equal(t, rec.Size, got.Size)
		assert.True(t, got.ModifiedAt.Equal(rec.ModifiedAt))
		assert.Equal(t, rec.Vector, got.Vector)
		assert.Equal(t, rec.AuxVector, got.AuxVector)
		assert.Equal(t, rec.Preview, got.Preview)
		assert.Equal(t, rec.ModelVersion, got.ModelVersion)
		assert.True(t, got.IndexedAt.Equal(rec.IndexedAt))
	})

	t.Run("nil auxiliary vector stays nil", func(t *testing.T) {
		store := newTestStore(t)
		records := store.RecordStore()
		rec := sample("/docs/plain.txt")
		rec.AuxVector = nil

		require.NoError(t, records.Save(ctx, rec))

		got, err := records.Get(ctx, "/docs/plain.txt")
		require.NoError(t, err)
		assert.Nil(t, got.AuxVector)
	})

	t.Run("get missing path returns not found", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.RecordStore().Get(ctx, "/missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save upserts by path", func(t *testing.T) {
		store := newTestStore(t)
		records := store.RecordStore()

		rec := sample("/docs/cv.pdf")
		require.NoError(t, records.Save(ctx, rec))
		rec.ModelVersion = "v2"
		require.NoError(t, records.Save(ctx, rec))

		count, err := records.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := records.Get(ctx, "/docs/cv.pdf")
		require.NoError(t, err)
		assert.Equal(t, "v2", got.ModelVersion)
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		store := newTestStore(t)
		records := store.RecordStore()
		for _, path := range []string{"/c", "/a", "/b"} {
			require.NoError(t, records.Save(ctx, sample(path)))
		}

		listed, err := records.List(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "/c", listed[0].Path)
		assert.Equal(t, "/a", listed[1].Path)
		assert.Equal(t, "/b", listed[2].Path)
	})

	t.Run("delete and clear", func(t *testing.T) {
		store := newTestStore(t)
		records := store.RecordStore()
		require.NoError(t, records.Save(ctx, sample("/a")))
		require.NoError(t, records.Save(ctx, sample("/b")))

		require.NoError(t, records.Delete(ctx, "/a"))
		count, err := records.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, records.Clear(ctx))
		count, err = records.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("search similar orders and filters", func(t *testing.T) {
		store := newTestStore(t)
		records := store.RecordStore()

		near := sample("/close")
		near.Vector = []float64{0.9, 0.1, 0}
		far := sample("/far.go")
		far.Kind = domain.KindCode
		far.Vector = []float64{0.1, 0.9, 0}
		require.NoError(t, records.Save(ctx, near))
		require.NoError(t, records.Save(ctx, far))

		hits, err := records.SearchSimilar(ctx, []float64{1, 0, 0}, 10, domain.KindAny)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "/close", hits[0].Record.Path)

		hits, err = records.SearchSimilar(ctx, []float64{1, 0, 0}, 10, domain.KindCode)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "/far.go", hits[0].Record.Path)
	})
}

func TestSQLiteVocabularyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load before save reports no vocabulary", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.VocabularyStore().LoadSnapshot(ctx)
		assert.ErrorIs(t, err, domain.ErrNoVocabulary)
	})

	t.Run("save load round trip", func(t *testing.T) {
		store := newTestStore(t)
		vocab := store.VocabularyStore()
		snap := domain.VocabularySnapshot{
			Terms:   []string{"alpha", "beta", "gamma"},
			IDF:     []float64{1.4, 1.0, 1.7},
			Version: "abc123",
		}

		require.NoError(t, vocab.SaveSnapshot(ctx, snap))

		got, err := vocab.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, snap, *got)
	})

	t.Run("save replaces the previous snapshot", func(t *testing.T) {
		store := newTestStore(t)
		vocab := store.VocabularyStore()

		require.NoError(t, vocab.SaveSnapshot(ctx, domain.VocabularySnapshot{
			Terms: []string{"a"}, IDF: []float64{1}, Version: "v1",
		}))
		require.NoError(t, vocab.SaveSnapshot(ctx, domain.VocabularySnapshot{
			Terms: []string{"b", "c"}, IDF: []float64{1, 1}, Version: "v2",
		}))

		got, err := vocab.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v2", got.Version)
		assert.Len(t, got.Terms, 2)
	})
}

func TestSQLiteHistoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("append assigns increasing ids", func(t *testing.T) {
		store := newTestStore(t)
		history := store.HistoryStore()

		a := domain.UsageEvent{RecordPath: "/a", Site: "s", SelectedAt: time.Now().UTC()}
		b := domain.UsageEvent{RecordPath: "/b", Site: "s", SelectedAt: time.Now().UTC()}
		require.NoError(t, history.Append(ctx, &a))
		require.NoError(t, history.Append(ctx, &b))

		assert.Positive(t, a.ID)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("list by site returns most recent first", func(t *testing.T) {
		store := newTestStore(t)
		history := store.HistoryStore()
		when := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

		require.NoError(t, history.Append(ctx, &domain.UsageEvent{
			RecordPath: "/old", Site: "s", PageURL: "https://s/1", SelectedAt: when,
		}))
		require.NoError(t, history.Append(ctx, &domain.UsageEvent{
			RecordPath: "/new", Site: "s", SelectedAt: when.Add(time.Minute),
		}))
		require.NoError(t, history.Append(ctx, &domain.UsageEvent{
			RecordPath: "/elsewhere", Site: "other", SelectedAt: when,
		}))

		events, err := history.ListBySite(ctx, "s", 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "/new", events[0].RecordPath)
		assert.Equal(t, "/old", events[1].RecordPath)
		assert.Equal(t, "https://s/1", events[1].PageURL)

		limited, err := history.ListBySite(ctx, "s", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("summarize aggregates per record", func(t *testing.T) {
		store := newTestStore(t)
		history := store.HistoryStore()
		early := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		late := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

		require.NoError(t, history.Append(ctx, &domain.UsageEvent{RecordPath: "/a", Site: "s", SelectedAt: early}))
		require.NoError(t, history.Append(ctx, &domain.UsageEvent{RecordPath: "/a", Site: "s", SelectedAt: late}))
		require.NoError(t, history.Append(ctx, &domain.UsageEvent{RecordPath: "/b", Site: "s", SelectedAt: early}))

		summaries, err := history.SummarizeBySite(ctx, "s")
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		byPath := map[string]domain.UsageSummary{}
		for _, s := range summaries {
			byPath[s.RecordPath] = s
		}
		assert.Equal(t, 2, byPath["/a"].Count)
		assert.True(t, byPath["/a"].LastUsed.Equal(late))
		assert.Equal(t, 1, byPath["/b"].Count)
	})
}

func TestSQLiteRescanConfigStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load before save returns defaults", func(t *testing.T) {
		store := newTestStore(t)

		cfg, err := store.RescanConfigStore().LoadRescanConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultRescanConfig(), cfg)
	})

	t.Run("save load round trip", func(t *testing.T) {
		store := newTestStore(t)
		rescan := store.RescanConfigStore()
		want := domain.RescanConfig{
			Enabled:  false,
			Interval: 45 * time.Minute,
			LastScan: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		}

		require.NoError(t, rescan.SaveRescanConfig(ctx, want))

		got, err := rescan.LoadRescanConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, want.Enabled, got.Enabled)
		assert.Equal(t, want.Interval, got.Interval)
		assert.True(t, got.LastScan.Equal(want.LastScan))
	})

	t.Run("zero last scan survives the round trip", func(t *testing.T) {
		store := newTestStore(t)
		rescan := store.RescanConfigStore()

		require.NoError(t, rescan.SaveRescanConfig(ctx, domain.RescanConfig{
			Enabled:  true,
			Interval: time.Hour,
		}))

		got, err := rescan.LoadRescanConfig(ctx)
		require.NoError(t, err)
		assert.True(t, got.LastScan.IsZero())
	})
}
