package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Storage
	DatabaseURL string

	// HTTP/Enrichment
	HTTPTimeout time.Duration
	UserAgent   string
	MaxRetries  int
	RetryDelay  time.Duration

	// Batch
	ToolDelay  time.Duration // minimum spacing between page fetches
	BatchLimit int           // default number of tools per run
}

// Load builds a Config by combining defaults, environment variables, and
// CLI flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:    DefaultLogLevel,
		JSONLog:     DefaultJSONLog,
		HTTPTimeout: DefaultHTTPTimeout,
		UserAgent:   DefaultUserAgent,
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  DefaultRetryDelay,
		ToolDelay:   DefaultToolDelay,
		BatchLimit:  DefaultBatchLimit,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("ENRICH_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("ENRICH_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("ENRICH_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("ENRICH_TOOL_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ToolDelay = d
		}
	}
	if v := os.Getenv("ENRICH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.PersistentFlags().Lookup("database-url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.DatabaseURL = s
			}
		}
		if f := cmd.PersistentFlags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.PersistentFlags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.PersistentFlags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.PersistentFlags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
