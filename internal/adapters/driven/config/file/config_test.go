package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates the config directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "cfg")

		store, err := NewStore(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	})
}

func TestStoreLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStore(dir)
		require.NoError(t, err)

		cfg, err := store.Load()
		require.NoError(t, err)

		assert.Empty(t, cfg.Root)
		assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
		assert.Equal(t, 10, cfg.SuggestLimit)
		assert.False(t, cfg.Scorer.Enabled)
	})

	t.Run("invalid toml is an error", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewStore(dir)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(store.Path(), []byte("root = [broken"), 0o600))

		_, err = store.Load()
		assert.Error(t, err)
	})
}

func TestStoreSave(t *testing.T) {
	t.Run("save load round trip", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		want := &Config{
			Root:         "/home/user/documents",
			DataDir:      "/var/lib/pickr",
			SuggestLimit: 5,
			Scorer: ScorerConfig{
				Enabled:    true,
				BaseURL:    "http://localhost:11434",
				Model:      "all-minilm",
				Dimensions: 384,
			},
		}
		require.NoError(t, store.Save(want))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("writes with restricted permissions", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Save(&Config{Root: "/tmp"}))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
