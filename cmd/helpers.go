package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shellmarks/catalog/internal/catalog"
	"github.com/shellmarks/catalog/internal/config"
	"github.com/shellmarks/catalog/internal/db"
	"github.com/shellmarks/catalog/internal/editor"
	"github.com/shellmarks/catalog/internal/history"
	"github.com/shellmarks/catalog/internal/linkrouter"
	"github.com/shellmarks/catalog/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `shellmarks init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger for cfg; --verbose forces debug level.
func newLogger(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func newCatalog(cfg *config.Config) *catalog.Catalog {
	return catalog.New(cfg.ScriptPaths, cfg.Include, cfg.Exclude)
}

func newOpener(cfg *config.Config) editor.Opener {
	return &editor.CommandOpener{Command: cfg.Editor, Wait: cfg.EditorWait}
}

// openHistory opens the edit history database under the data dir.
func openHistory(cfg *config.Config) (*db.DB, *history.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, history.NewStore(database), nil
}

// newHost wires the edit actions for one front end. opener may be nil.
func newHost(cat *catalog.Catalog, opener editor.Opener, store *history.Store, source history.Source, logger *slog.Logger) *linkrouter.Host {
	return &linkrouter.Host{
		Catalog: cat,
		Opener:  opener,
		History: store,
		Source:  source,
		Logger:  logger,
	}
}
