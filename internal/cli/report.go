// internal/cli/report.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/toolindex/enrich/internal/app"
	"github.com/toolindex/enrich/internal/config"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the enrichment completeness report",
	Long: `Read-only pass over the entire tool set: per-field fill rates,
platform-tag distribution, and pricing-model distribution.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Reporter.Report(ctx)
}
