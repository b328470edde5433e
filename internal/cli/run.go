// internal/cli/run.go
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/toolindex/enrich/internal/app"
	"github.com/toolindex/enrich/internal/config"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [limit]",
	Short: "Enrich a batch of under-enriched tools",
	Long: `Selects up to limit tools still missing enrichment data (featured and
well-liked tools first), fetches each homepage sequentially with a fixed
delay between requests, persists the extracted metadata, and prints a
completeness report afterwards.`,
	Example: `  # Enrich the default batch of 20 tools
  enrich run

  # Enrich up to 50 tools
  enrich run 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnrichment,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runEnrichment(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		return err
	}

	limit := cfg.BatchLimit
	if len(args) == 1 {
		limit, err = strconv.Atoi(args[0])
		if err != nil || limit <= 0 {
			return fmt.Errorf("invalid limit %q: must be a positive integer", args[0])
		}
	}

	ctx := cmd.Context()
	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if _, err := application.Runner.Run(ctx, limit); err != nil {
		return err
	}

	// Post-run observability pass over the whole tool set
	return application.Reporter.Report(ctx)
}
