package report

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/toolindex/enrich/pkg/models"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

type fakeStore struct {
	tools []models.Tool
}

func (f *fakeStore) FindUnderEnriched(ctx context.Context, limit int) ([]models.Tool, error) {
	return nil, nil
}

func (f *fakeStore) AllTools(ctx context.Context) ([]models.Tool, error) {
	return f.tools, nil
}

func (f *fakeStore) UpdateTool(ctx context.Context, id uint, patch models.Patch) error {
	return nil
}

func TestReport_FieldCoverage(t *testing.T) {
	st := &fakeStore{tools: []models.Tool{
		{ID: 1, LogoURL: "https://a/logo.png", GithubURL: "https://github.com/a", APIAvailable: true},
		{ID: 2, LogoURL: "https://b/logo.png"},
		{ID: 3},
		{ID: 4},
	}}

	out := &bytes.Buffer{}
	if err := New(st, out).Report(context.Background()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "(4 tools)") {
		t.Errorf("missing total count:\n%s", text)
	}
	if !strings.Contains(text, "logo") || !strings.Contains(text, "50.0%") {
		t.Errorf("missing logo coverage line:\n%s", text)
	}
	if !strings.Contains(text, "25.0%") {
		t.Errorf("missing github/api coverage:\n%s", text)
	}
}

func TestReport_PlatformTallySkipsMalformed(t *testing.T) {
	st := &fakeStore{tools: []models.Tool{
		{ID: 1, SupportedPlatforms: `["web","ios"]`},
		{ID: 2, SupportedPlatforms: `["web"]`},
		{ID: 3, SupportedPlatforms: `{broken`},
		{ID: 4},
	}}

	out := &bytes.Buffer{}
	if err := New(st, out).Report(context.Background()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	text := out.String()
	section := text[strings.Index(text, "Platforms"):]

	// web appears twice, ios once; the malformed row contributes nothing
	counts := map[string]string{}
	for _, line := range strings.Split(section, "\n") {
		fields := strings.Fields(stripANSI(line))
		if len(fields) == 2 {
			counts[fields[0]] = fields[1]
		}
	}
	if counts["web"] != "2" {
		t.Errorf("web count = %q, want 2\n%s", counts["web"], section)
	}
	if counts["ios"] != "1" {
		t.Errorf("ios count = %q, want 1\n%s", counts["ios"], section)
	}
	if strings.Contains(section, "broken") {
		t.Errorf("malformed platform list leaked into output:\n%s", section)
	}
}

func TestReport_PricingTallyUnknownAndOrder(t *testing.T) {
	st := &fakeStore{tools: []models.Tool{
		{ID: 1, PricingModel: "subscription"},
		{ID: 2, PricingModel: "subscription"},
		{ID: 3, PricingModel: "free"},
		{ID: 4},
	}}

	out := &bytes.Buffer{}
	if err := New(st, out).Report(context.Background()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "unknown") {
		t.Errorf("missing unknown pricing bucket:\n%s", text)
	}

	// subscription (2) must be listed before free (1)
	section := text[strings.Index(text, "Pricing models"):]
	if strings.Index(section, "subscription") > strings.Index(section, "free") {
		t.Errorf("pricing tally not sorted by count:\n%s", section)
	}
}

func TestReport_EmptyToolSet(t *testing.T) {
	out := &bytes.Buffer{}
	if err := New(&fakeStore{}, out).Report(context.Background()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !strings.Contains(out.String(), "(0 tools)") {
		t.Errorf("missing empty report header:\n%s", out.String())
	}
}
