package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khrees2412/screener/internal/config"
	"github.com/khrees2412/screener/internal/database"
	"github.com/khrees2412/screener/internal/evaluator"
	"github.com/khrees2412/screener/internal/history"
	"github.com/khrees2412/screener/internal/logger"
	"github.com/khrees2412/screener/internal/screener"
	"go.uber.org/zap"
)

// App is the dependency container for the CLI application
type App struct {
	DB       *sql.DB
	Config   *config.Config
	Logger   *zap.Logger
	Store    history.Store
	Screener *screener.Service
}

// Options override configuration for a single invocation
type Options struct {
	Session string
	Memory  bool
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg, log, err := load(opts)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, log)
}

// OpenStorage opens the session database without binding a session, for
// commands that manage sessions themselves
func OpenStorage(opts Options) (*App, error) {
	cfg, log, err := load(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Driver == config.DriverMemory {
		return nil, ErrNoSessions
	}

	db, err := database.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &App{DB: db, Config: cfg, Logger: log}, nil
}

func load(opts Options) (*config.Config, *zap.Logger, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := *config.AppConfig
	if opts.Session != "" {
		cfg.Session = opts.Session
	}
	if opts.Memory {
		cfg.Storage.Driver = config.DriverMemory
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &cfg, log, nil
}

// newApp wires the store, scorer and screening service from cfg
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		a.Store = history.NewMemoryStore()
	default:
		db, err := database.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if _, err := database.GetSession(ctx, db, cfg.Session); err != nil {
			db.Close()
			return nil, err
		}
		a.DB = db
		a.Store = database.NewHistoryRepository(db, cfg.Session)
	}

	mode, err := evaluator.ParseMode(cfg.Scoring.Mode)
	if err != nil {
		a.Close()
		return nil, err
	}
	scorer := evaluator.New(mode,
		evaluator.WithNoise(cfg.Scoring.Noise),
		evaluator.WithSeed(cfg.Scoring.Seed),
	)
	if mode != evaluator.ModeDeterministic {
		log.Warn("non-deterministic scoring enabled", zap.String("mode", string(mode)))
	}

	a.Screener = screener.New(scorer, a.Store, log)

	log.Debug("application ready",
		zap.String("session", cfg.Session),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("scoring", string(mode)),
	)
	return a, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
