// Package report computes operator-facing completeness statistics over the
// whole tool set: per-field fill rates, platform-tag frequency, and pricing
// model frequency.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/toolindex/enrich/internal/store"
	"github.com/toolindex/enrich/internal/ui"
	"github.com/toolindex/enrich/pkg/models"
)

// Reporter is a read-only pass; it never writes to storage.
type Reporter struct {
	store store.Store
	out   io.Writer
}

// New creates a Reporter writing to out (stdout if nil).
func New(st store.Store, out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{store: st, out: out}
}

type fieldCheck struct {
	label  string
	filled func(t *models.Tool) bool
}

// trackedFields lists the enrichment fields whose fill rate the report
// shows. A boolean counts as filled only when true.
var trackedFields = []fieldCheck{
	{"logo", func(t *models.Tool) bool { return t.LogoURL != "" }},
	{"twitter", func(t *models.Tool) bool { return t.TwitterURL != "" }},
	{"linkedin", func(t *models.Tool) bool { return t.LinkedinURL != "" }},
	{"github", func(t *models.Tool) bool { return t.GithubURL != "" }},
	{"base price", func(t *models.Tool) bool { return t.BasePrice != "" }},
	{"ios app", func(t *models.Tool) bool { return t.IOSAppURL != "" }},
	{"android app", func(t *models.Tool) bool { return t.AndroidAppURL != "" }},
	{"email", func(t *models.Tool) bool { return t.Email != "" }},
	{"api available", func(t *models.Tool) bool { return t.APIAvailable }},
	{"free version", func(t *models.Tool) bool { return t.HasFreeVersion }},
}

// Report prints the three completeness views. Malformed stored platform
// lists are skipped silently; a missing pricing model is tallied as
// "unknown".
func (r *Reporter) Report(ctx context.Context) error {
	tools, err := r.store.AllTools(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tools: %w", err)
	}

	total := len(tools)
	fmt.Fprintf(r.out, "\n%s (%d tools)\n", ui.Bold("Completeness report"), total)
	if total == 0 {
		return nil
	}

	fmt.Fprintf(r.out, "\n%s\n", ui.Bold("Field coverage"))
	for _, fc := range trackedFields {
		count := 0
		for i := range tools {
			if fc.filled(&tools[i]) {
				count++
			}
		}
		fmt.Fprintf(r.out, "  %-14s %4d / %-4d (%.1f%%)\n", fc.label, count, total, percent(count, total))
	}

	platformCounts := make(map[string]int)
	for i := range tools {
		raw := tools[i].SupportedPlatforms
		if raw == "" {
			continue
		}
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			continue
		}
		for _, tag := range tags {
			platformCounts[tag]++
		}
	}
	r.printTally("Platforms", platformCounts)

	pricingCounts := make(map[string]int)
	for i := range tools {
		model := tools[i].PricingModel
		if model == "" {
			model = "unknown"
		}
		pricingCounts[model]++
	}
	r.printTally("Pricing models", pricingCounts)

	return nil
}

func (r *Reporter) printTally(title string, counts map[string]int) {
	type row struct {
		key string
		n   int
	}
	rows := make([]row, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, row{k, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].key < rows[j].key
	})

	fmt.Fprintf(r.out, "\n%s\n", ui.Bold(title))
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %-18s %d\n", row.key, row.n)
	}
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
