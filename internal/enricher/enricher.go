// Package enricher fetches a tool's homepage and merges extracted metadata
// into a sparse patch under the fill-only-if-empty policy.
package enricher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toolindex/enrich/internal/analyzer"
	"github.com/toolindex/enrich/internal/fetch"
	"github.com/toolindex/enrich/internal/retry"
	"github.com/toolindex/enrich/pkg/models"
)

// Fetcher is the page-retrieval capability the driver consumes.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
}

// Enricher fills missing metadata on a tool record from its homepage.
type Enricher struct {
	fetcher Fetcher
	retry   retry.Config
}

// New creates an Enricher with the given fetch capability and retry policy.
func New(fetcher Fetcher, retryCfg retry.Config) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		retry:   retryCfg,
	}
}

// Result is the outcome of enriching a single tool.
type Result struct {
	Success       bool
	Err           error
	Patch         models.Patch
	UpdatedFields int // patch keys beyond the two bookkeeping ones
}

// Enrich fetches the tool's page with retries, runs the analyzer, and
// builds the patch. It never mutates the tool record itself; the caller
// persists the patch. A permanently failed fetch still produces a patch
// advancing last_checked, so the selection query stops treating a broken
// URL like a never-checked one.
func (e *Enricher) Enrich(ctx context.Context, tool *models.Tool) *Result {
	var page *fetch.Result
	err := retry.WithRetry(ctx, e.retry, func() error {
		res, ferr := e.fetcher.Get(ctx, tool.URL)
		if ferr != nil {
			return ferr
		}
		page = res
		return nil
	})

	now := time.Now()
	if err != nil {
		log.Debug().Err(err).Str("url", tool.URL).Msg("Enrichment fetch failed")
		return &Result{
			Err: err,
			Patch: models.Patch{
				models.ColLastChecked:    now,
				models.ColResponseTimeMS: nil,
			},
		}
	}

	a := analyzer.Analyze(page.Body, tool.URL)

	patch := models.Patch{
		models.ColLastChecked:    now,
		models.ColResponseTimeMS: page.ResponseTime,
	}

	// Fill-only fields: set only while the record has nothing on file.
	if a.Meta.LogoURL != "" && tool.LogoURL == "" {
		patch[models.ColLogoURL] = a.Meta.LogoURL
	}
	if a.Meta.Description != "" && tool.Tagline == "" {
		patch[models.ColTagline] = a.Meta.Description
	}
	if a.Social.Twitter != "" && tool.TwitterURL == "" {
		patch[models.ColTwitterURL] = a.Social.Twitter
	}
	if a.Social.GitHub != "" && tool.GithubURL == "" {
		patch[models.ColGithubURL] = a.Social.GitHub
	}
	if a.Social.LinkedIn != "" && tool.LinkedinURL == "" {
		patch[models.ColLinkedinURL] = a.Social.LinkedIn
	}
	if a.Apps.IOS != "" && tool.IOSAppURL == "" {
		patch[models.ColIOSAppURL] = a.Apps.IOS
	}
	if a.Apps.Android != "" && tool.AndroidAppURL == "" {
		patch[models.ColAndroidAppURL] = a.Apps.Android
	}
	if a.Pricing.BasePrice != "" && tool.BasePrice == "" {
		patch[models.ColBasePrice] = a.Pricing.BasePrice
	}

	// Pricing signals replace stale values instead of filling.
	if a.Pricing.Model != tool.PricingModel {
		patch[models.ColPricingModel] = a.Pricing.Model
	}
	if a.Pricing.HasFreeVersion != tool.HasFreeVersion {
		patch[models.ColHasFreeVersion] = a.Pricing.HasFreeVersion
	}

	// Platforms are unioned with the stored list, never replaced wholesale.
	if len(a.Platforms) > 0 {
		patch[models.ColSupportedPlatforms] = unionPlatforms(tool.SupportedPlatforms, a.Platforms)
	}

	// One-directional: a true flag is never cleared by a later scan.
	if a.APIAvailable && !tool.APIAvailable {
		patch[models.ColAPIAvailable] = true
	}

	if tool.Email == "" && len(a.EmailGuesses) > 0 {
		patch[models.ColEmail] = a.EmailGuesses[0]
	}

	return &Result{
		Success:       true,
		Patch:         patch,
		UpdatedFields: len(patch) - 2,
	}
}

// unionPlatforms merges the stored platform list with newly detected tags,
// preserving stored order, de-duplicating, and re-encoding as JSON. A
// missing or malformed stored list falls back to the web baseline.
func unionPlatforms(stored string, detected []string) string {
	current := []string{"web"}
	if stored != "" {
		var parsed []string
		if err := json.Unmarshal([]byte(stored), &parsed); err == nil && len(parsed) > 0 {
			current = parsed
		}
	}

	seen := make(map[string]bool, len(current)+len(detected))
	merged := make([]string, 0, len(current)+len(detected))
	for _, tag := range current {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	for _, tag := range detected {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}

	out, _ := json.Marshal(merged)
	return string(out)
}
