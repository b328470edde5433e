// Package batch drives sequential enrichment over a bounded list of tools.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/toolindex/enrich/internal/enricher"
	"github.com/toolindex/enrich/internal/store"
	"github.com/toolindex/enrich/internal/ui"
)

// Stats accumulates counters across one enrichment run.
type Stats struct {
	Processed     int
	Succeeded     int
	Failed        int
	FieldsUpdated int
}

// SuccessRate returns the share of processed tools enriched successfully,
// as a percentage.
func (s *Stats) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Processed) * 100
}

// Runner selects under-enriched tools and enriches them one at a time,
// pacing requests so target sites are not hammered.
type Runner struct {
	store    store.Store
	enricher *enricher.Enricher
	pacer    *rate.Limiter
	out      io.Writer
	progress bool
}

// NewRunner creates a Runner. toolDelay is the minimum spacing between
// consecutive page fetches; burst 1 lets the first tool proceed
// immediately while every later one waits out the delay.
func NewRunner(st store.Store, en *enricher.Enricher, toolDelay time.Duration, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		store:    st,
		enricher: en,
		pacer:    rate.NewLimiter(rate.Every(toolDelay), 1),
		out:      out,
		progress: out == os.Stdout,
	}
}

// Run enriches up to limit under-enriched tools sequentially and prints a
// summary. A failure on one tool (fetch or persist) is counted and the
// loop moves on; every processed tool gets its patch persisted so
// last_checked always advances.
func (r *Runner) Run(ctx context.Context, limit int) (*Stats, error) {
	tools, err := r.store.FindUnderEnriched(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select tools: %w", err)
	}

	stats := &Stats{}
	if len(tools) == 0 {
		fmt.Fprintln(r.out, "No under-enriched tools found")
		return stats, nil
	}

	log.Info().Int("tools", len(tools)).Msg("Starting enrichment run")

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.NewOptions(len(tools),
			progressbar.OptionSetDescription("enriching"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i := range tools {
		tool := tools[i]

		if err := r.pacer.Wait(ctx); err != nil {
			return stats, err
		}

		fmt.Fprintf(r.out, "%s %s (%s)\n", ui.Info("analyzing"), tool.Title, tool.URL)
		res := r.enricher.Enrich(ctx, &tool)
		stats.Processed++

		// Persist even failed results so last_checked advances.
		if err := r.store.UpdateTool(ctx, tool.ID, res.Patch); err != nil {
			log.Warn().Err(err).Uint("id", tool.ID).Str("title", tool.Title).Msg("Failed to persist patch")
			stats.Failed++
			fmt.Fprintf(r.out, "%s %s: %v\n", ui.Error("✗"), tool.Title, err)
		} else if res.Success {
			stats.Succeeded++
			stats.FieldsUpdated += res.UpdatedFields
			fmt.Fprintf(r.out, "%s %s: %d fields updated\n", ui.Success("✓"), tool.Title, res.UpdatedFields)
		} else {
			stats.Failed++
			fmt.Fprintf(r.out, "%s %s: %v\n", ui.Error("✗"), tool.Title, res.Err)
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Debug().Err(err).Msg("Progress bar update failed")
			}
		}
	}

	r.printSummary(stats)
	return stats, nil
}

func (r *Runner) printSummary(stats *Stats) {
	fmt.Fprintf(r.out, "\n%s\n", ui.Bold("Enrichment run complete"))
	fmt.Fprintf(r.out, "  Processed:      %d\n", stats.Processed)
	fmt.Fprintf(r.out, "  Succeeded:      %d\n", stats.Succeeded)
	fmt.Fprintf(r.out, "  Failed:         %d\n", stats.Failed)
	fmt.Fprintf(r.out, "  Fields updated: %d\n", stats.FieldsUpdated)
	fmt.Fprintf(r.out, "  Success rate:   %.1f%%\n", stats.SuccessRate())
}
