package cli

import (
	"errors"
	"fmt"

	"github.com/harken-labs/pickr-cli/internal/adapters/driven/config/file"
	"github.com/harken-labs/pickr-cli/internal/adapters/driven/embedding/ollama"
	"github.com/harken-labs/pickr-cli/internal/adapters/driven/extract"
	"github.com/harken-labs/pickr-cli/internal/adapters/driven/storage/sqlite"
	"github.com/harken-labs/pickr-cli/internal/connectors/filesystem"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/core/ports/driving"
	"github.com/harken-labs/pickr-cli/internal/core/services"
	"github.com/harken-labs/pickr-cli/internal/logger"
)

// errNoRoot is returned when no directory tree has been configured.
var errNoRoot = errors.New("no root directory configured: pass --root or set root in config.toml")

// app holds the wired services for one command invocation.
type app struct {
	cfg    *file.Config
	store  *sqlite.Store
	source *filesystem.Source
	scorer driven.RemoteScorer

	indexer   driving.Indexer
	suggester driving.Suggester
	usage     driving.UsageRecorder
	scheduler *services.Scheduler
}

// newApp loads config and wires stores, adapters and services. Flag
// values override the persisted config; a new --root is written back so
// later invocations keep working without it.
func newApp() (*app, error) {
	cfgStore, err := file.NewStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	cfg, err := cfgStore.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagRoot != "" && flagRoot != cfg.Root {
		cfg.Root = flagRoot
		if err := cfgStore.Save(cfg); err != nil {
			logger.Warn("persisting root to config: %v", err)
		}
	}
	if cfg.Root == "" {
		return nil, errNoRoot
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	a := &app{
		cfg:    cfg,
		store:  store,
		source: filesystem.New(cfg.Root),
	}
	if cfg.Scorer.Enabled {
		a.scorer = ollama.NewScorer(ollama.Config{
			BaseURL:    cfg.Scorer.BaseURL,
			Model:      cfg.Scorer.Model,
			Dimensions: cfg.Scorer.Dimensions,
		})
	}

	indexer := services.NewIndexService(
		a.source,
		extract.NewDefaultRegistry(),
		store.RecordStore(),
		store.VocabularyStore(),
		store.RescanConfigStore(),
		a.scorer,
	)
	a.indexer = indexer
	a.suggester = services.NewRankService(
		store.RecordStore(),
		store.VocabularyStore(),
		store.HistoryStore(),
		a.scorer,
	)
	a.usage = services.NewUsageService(store.HistoryStore())
	a.scheduler = services.NewScheduler(store.RescanConfigStore(), indexer)

	return a, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if a.scorer != nil {
		if err := a.scorer.Close(); err != nil {
			logger.Warn("closing scorer: %v", err)
		}
	}
	if err := a.source.Close(); err != nil {
		logger.Warn("closing file source: %v", err)
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("closing store: %v", err)
	}
}
