// internal/cli/root.go
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/toolindex/enrich/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "enrich",
	Short:   "Background metadata enrichment for the AI tool directory",
	Long:    `Enrich scrapes each listed tool's homepage and fills in missing metadata: logo, social links, pricing model, app links, supported platforms, and API availability.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(initLogging)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initLogging configures zerolog from the global flags before any command runs.
func initLogging() {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load configuration, using defaults")
		cfg = &config.Config{LogLevel: config.DefaultLogLevel}
	}

	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		// Suppress info chatter unless verbose is explicitly requested
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
