// Package analyzer extracts structured metadata from raw homepage HTML.
//
// Every pass is a pure substring/regex heuristic over the lower-cased page
// text. Nothing here builds a DOM tree or validates markup: the passes are
// deliberately tolerant of malformed HTML, and a missed or spurious match is
// acceptable for best-effort enrichment.
package analyzer

import (
	"net/url"
	"regexp"
	"strings"
)

// Metadata holds page-level tags pulled from meta/title markup.
type Metadata struct {
	Title       string
	Description string
	LogoURL     string
	SiteType    string
}

// SocialLinks holds normalized profile URLs. An empty field means the
// profile was not found on the page.
type SocialLinks struct {
	Twitter  string
	GitHub   string
	LinkedIn string
}

// Pricing holds the signals produced by the pricing cascade.
type Pricing struct {
	HasFreeVersion bool
	Model          string
	BasePrice      string
}

// AppLinks holds mobile store URLs found on the page.
type AppLinks struct {
	IOS     string
	Android string
}

// Analysis aggregates every extraction pass over a single page.
type Analysis struct {
	Meta         Metadata
	Social       SocialLinks
	Pricing      Pricing
	Apps         AppLinks
	Platforms    []string
	APIAvailable bool
	EmailGuesses []string
}

// Pricing model categories produced by the cascade, first match wins.
const (
	ModelSubscription = "subscription"
	ModelFreemium     = "freemium"
	ModelEnterprise   = "enterprise"
	ModelPayPerUse    = "pay-per-use"
	ModelFree         = "free"
)

var (
	titleTagRe  = regexp.MustCompile(`<title[^>]*>([^<]*)</title>`)
	logoAssetRe = regexp.MustCompile(`<(?:img[^>]+src|link[^>]+href)\s*=\s*["']([^"']*(?:logo|favicon|brand)[^"']*\.(?:png|jpe?g|svg|ico))["']`)
	twitterRe   = regexp.MustCompile(`(?:twitter|x)\.com/([a-z0-9_]+)`)
	// The repo segment allows interior dots (e.g. repo.js) but never a
	// trailing one, so sentence punctuation after a link is not swallowed.
	githubRe    = regexp.MustCompile(`github\.com/([a-z0-9_-]+(?:/[a-z0-9_-]+(?:\.[a-z0-9_-]+)*)?)`)
	linkedinRe  = regexp.MustCompile(`linkedin\.com/(?:company|in)/([a-z0-9_-]+)`)
	priceRe     = regexp.MustCompile(`\$(\d+(?:\.\d+)?)\s*(?:/|per)?\s*(?:month|mo|user|seat)`)
	iosAppRe    = regexp.MustCompile(`apps\.apple\.com/[^"'\s<>]+`)
	androidRe   = regexp.MustCompile(`play\.google\.com/store/apps/[^"'\s<>]+`)
)

// metaTag matches one <meta> key in either attribute order, single or
// double quoted. The page is already lower-cased so matching is effectively
// case-insensitive.
type metaTag struct {
	keyFirst     *regexp.Regexp
	contentFirst *regexp.Regexp
}

func newMetaTag(key string) metaTag {
	q := regexp.QuoteMeta(key)
	return metaTag{
		keyFirst:     regexp.MustCompile(`<meta[^>]*(?:property|name)\s*=\s*["']` + q + `["'][^>]*content\s*=\s*["']([^"']*)["']`),
		contentFirst: regexp.MustCompile(`<meta[^>]*content\s*=\s*["']([^"']*)["'][^>]*(?:property|name)\s*=\s*["']` + q + `["']`),
	}
}

func (m metaTag) find(page string) string {
	if match := m.keyFirst.FindStringSubmatch(page); match != nil {
		return strings.TrimSpace(match[1])
	}
	if match := m.contentFirst.FindStringSubmatch(page); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

var (
	ogTitleTag     = newMetaTag("og:title")
	ogDescTag      = newMetaTag("og:description")
	ogImageTag     = newMetaTag("og:image")
	ogTypeTag      = newMetaTag("og:type")
	descriptionTag = newMetaTag("description")
)

// Analyze lower-cases the HTML once and runs every extraction pass.
func Analyze(html, sourceURL string) *Analysis {
	page := strings.ToLower(html)
	return &Analysis{
		Meta:         ExtractMetadata(page, sourceURL),
		Social:       DetectSocialLinks(page),
		Pricing:      AnalyzePricing(page),
		Apps:         DetectAppLinks(page),
		Platforms:    DetectPlatforms(page),
		APIAvailable: DetectAPI(page),
		EmailGuesses: SuggestEmails(sourceURL),
	}
}

// ExtractMetadata pulls title, description, logo, and site type from the
// page, preferring Open Graph tags over their generic equivalents.
func ExtractMetadata(page, sourceURL string) Metadata {
	md := Metadata{SiteType: ogTypeTag.find(page)}

	md.Title = ogTitleTag.find(page)
	if md.Title == "" {
		if match := titleTagRe.FindStringSubmatch(page); match != nil {
			md.Title = strings.TrimSpace(match[1])
		}
	}

	md.Description = ogDescTag.find(page)
	if md.Description == "" {
		md.Description = descriptionTag.find(page)
	}

	if logo := ogImageTag.find(page); logo != "" {
		md.LogoURL = resolveAssetURL(logo, sourceURL)
	} else if match := logoAssetRe.FindStringSubmatch(page); match != nil {
		md.LogoURL = resolveAssetURL(match[1], sourceURL)
	}

	return md
}

// resolveAssetURL resolves a logo path against the page URL. Root-relative
// paths are joined to the scheme+host (the first three /-delimited segments
// of the URL); other relative paths are simply concatenated. This is a
// best-effort heuristic, not full RFC 3986 resolution.
func resolveAssetURL(path, sourceURL string) string {
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "/"):
		parts := strings.SplitN(sourceURL, "/", 4)
		if len(parts) >= 3 {
			return parts[0] + "//" + parts[2] + path
		}
		return path
	default:
		return strings.TrimSuffix(sourceURL, "/") + "/" + path
	}
}

// DetectSocialLinks finds at most one profile per network, first occurrence
// wins. Both linkedin.com/company/ and linkedin.com/in/ collapse onto the
// /company/ path.
func DetectSocialLinks(page string) SocialLinks {
	var s SocialLinks
	if match := twitterRe.FindStringSubmatch(page); match != nil {
		s.Twitter = "https://twitter.com/" + match[1]
	}
	if match := githubRe.FindStringSubmatch(page); match != nil {
		s.GitHub = "https://github.com/" + match[1]
	}
	if match := linkedinRe.FindStringSubmatch(page); match != nil {
		s.LinkedIn = "https://linkedin.com/company/" + match[1]
	}
	return s
}

var freeSignals = []string{"free", "free plan", "free tier", "no cost", "免费"}

// AnalyzePricing classifies the page into one of the five pricing models
// via an ordered rule cascade and extracts a base price if present.
// The billing unit is always rendered as /month regardless of the token
// that actually matched.
func AnalyzePricing(page string) Pricing {
	p := Pricing{}
	for _, kw := range freeSignals {
		if strings.Contains(page, kw) {
			p.HasFreeVersion = true
			break
		}
	}

	switch {
	case containsAny(page, "subscription", "monthly", "yearly"):
		p.Model = ModelSubscription
	case strings.Contains(page, "freemium") || (p.HasFreeVersion && strings.Contains(page, "premium")):
		p.Model = ModelFreemium
	case containsAny(page, "enterprise", "contact for pricing"):
		p.Model = ModelEnterprise
	case containsAny(page, "pay per use", "usage based"):
		p.Model = ModelPayPerUse
	case p.HasFreeVersion && !strings.Contains(page, "premium") && !strings.Contains(page, "pro"):
		p.Model = ModelFree
	default:
		p.Model = ModelFreemium
	}

	if match := priceRe.FindStringSubmatch(page); match != nil {
		p.BasePrice = "$" + match[1] + "/month"
	}

	return p
}

// DetectAppLinks finds the first App Store and Play Store URLs on the page.
func DetectAppLinks(page string) AppLinks {
	var a AppLinks
	if match := iosAppRe.FindString(page); match != "" {
		a.IOS = "https://" + match
	}
	if match := androidRe.FindString(page); match != "" {
		a.Android = "https://" + match
	}
	return a
}

var platformChecks = []struct {
	tag      string
	keywords []string
}{
	{"ios", []string{"ios", "iphone", "ipad"}},
	{"android", []string{"android"}},
	{"windows", []string{"windows", ".exe"}},
	{"mac", []string{"macos", "mac app"}},
	{"linux", []string{"linux"}},
	{"chrome-extension", []string{"chrome extension", "chrome web store"}},
}

// DetectPlatforms returns the supported platform tags in insertion order.
// "web" is the implicit baseline and always comes first; each tag appears
// at most once.
func DetectPlatforms(page string) []string {
	platforms := []string{"web"}
	for _, check := range platformChecks {
		if containsAny(page, check.keywords...) {
			platforms = append(platforms, check.tag)
		}
	}
	return platforms
}

var apiSignals = []string{"api", "developer", "integration", "webhook", "rest api", "graphql"}

// DetectAPI reports whether the page mentions any developer-facing API.
func DetectAPI(page string) bool {
	return containsAny(page, apiSignals...)
}

var emailPrefixes = []string{"hello", "contact", "support", "info", "sales"}

// SuggestEmails generates candidate contact addresses for the tool's
// domain. The addresses are guesses, not verified mailboxes; callers use
// them only as a last-resort fill.
func SuggestEmails(sourceURL string) []string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	host := u.Hostname()
	guesses := make([]string, 0, len(emailPrefixes))
	for _, prefix := range emailPrefixes {
		guesses = append(guesses, prefix+"@"+host)
	}
	return guesses
}

func containsAny(page string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(page, kw) {
			return true
		}
	}
	return false
}
