// Package file provides the TOML application config stored under the
// pickr config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// configFileName is the file name inside the config directory.
const configFileName = "config.toml"

// Config is the persisted application configuration. Zero values fall
// back to the defaults applied by Load.
type Config struct {
	// Root is the directory tree to index.
	Root string `toml:"root"`

	// DataDir holds the SQLite database (default: <configDir>/data).
	DataDir string `toml:"data_dir"`

	// SuggestLimit caps suggestion lists (default: 10).
	SuggestLimit int `toml:"suggest_limit"`

	// Scorer configures the optional auxiliary embedding service.
	Scorer ScorerConfig `toml:"scorer"`
}

// ScorerConfig configures the Ollama-backed auxiliary scorer.
type ScorerConfig struct {
	// Enabled turns auxiliary scoring on (default: off).
	Enabled bool `toml:"enabled"`

	// BaseURL is the Ollama API base URL.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// Dimensions is the embedding vector size.
	Dimensions int `toml:"dimensions"`
}

// Store reads and writes the config file.
type Store struct {
	filePath string
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.pickr.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configDir = filepath.Join(home, ".pickr")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &Store{filePath: filepath.Join(configDir, configFileName)}, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.filePath
}

// Load reads the config, applying defaults for unset fields. A missing
// file yields the defaults without error.
func (s *Store) Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	s.applyDefaults(cfg)
	return cfg, nil
}

// Save persists the config with restricted permissions.
func (s *Store) Save(cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (s *Store) applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(filepath.Dir(s.filePath), "data")
	}
	if cfg.SuggestLimit <= 0 {
		cfg.SuggestLimit = 10
	}
}
