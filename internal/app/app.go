// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toolindex/enrich/internal/batch"
	"github.com/toolindex/enrich/internal/config"
	"github.com/toolindex/enrich/internal/enricher"
	"github.com/toolindex/enrich/internal/fetch"
	"github.com/toolindex/enrich/internal/report"
	"github.com/toolindex/enrich/internal/retry"
	"github.com/toolindex/enrich/internal/store"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across CLI commands.
// Use Close() to release the database connection on shutdown.
type Application struct {
	Config   *config.Config
	Logger   *zerolog.Logger
	Store    *store.DB
	Fetcher  *fetch.Client
	Enricher *enricher.Enricher
	Runner   *batch.Runner
	Reporter *report.Reporter

	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// A failed database connection is returned as an error here, before any
// batch loop starts; there is no recovery path for it.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set ENRICH_DATABASE_URL)")
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Debug().Msg("Database connection established")

	fetcher := fetch.NewClient(cfg.HTTPTimeout, cfg.UserAgent)
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("user_agent", cfg.UserAgent).
		Msg("HTTP client initialized")

	en := enricher.New(fetcher, retry.Config{
		MaxRetries: cfg.MaxRetries,
		Delay:      cfg.RetryDelay,
	})

	app := &Application{
		Config:    cfg,
		Logger:    &logger,
		Store:     db,
		Fetcher:   fetcher,
		Enricher:  en,
		Runner:    batch.NewRunner(db, en, cfg.ToolDelay, os.Stdout),
		Reporter:  report.New(db, os.Stdout),
		startTime: time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// Close releases the database connection.
func (a *Application) Close() error {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing database")
			return err
		}
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}
