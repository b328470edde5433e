package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("database-url", "", "Postgres DSN (overrides ENRICH_DATABASE_URL)")
	cmd.PersistentFlags().String("timeout", "", "Per-page fetch timeout (e.g. 15s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
}
