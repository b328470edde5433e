package models

import "time"

// Tool represents one row of the websites table: a cataloged AI product
// with a set of nullable enrichment fields filled in by the engine.
type Tool struct {
	ID    uint   `gorm:"column:id;primaryKey" json:"id"`
	Title string `gorm:"column:title" json:"title"`
	URL   string `gorm:"column:url" json:"url"`
	Slug  string `gorm:"column:slug" json:"slug"`

	LogoURL     string `gorm:"column:logo_url" json:"logo_url,omitempty"`
	Tagline     string `gorm:"column:tagline" json:"tagline,omitempty"`
	TwitterURL  string `gorm:"column:twitter_url" json:"twitter_url,omitempty"`
	GithubURL   string `gorm:"column:github_url" json:"github_url,omitempty"`
	LinkedinURL string `gorm:"column:linkedin_url" json:"linkedin_url,omitempty"`

	PricingModel   string `gorm:"column:pricing_model" json:"pricing_model,omitempty"`
	HasFreeVersion bool   `gorm:"column:has_free_version" json:"has_free_version"`
	BasePrice      string `gorm:"column:base_price" json:"base_price,omitempty"`

	IOSAppURL     string `gorm:"column:ios_app_url" json:"ios_app_url,omitempty"`
	AndroidAppURL string `gorm:"column:android_app_url" json:"android_app_url,omitempty"`

	// JSON-encoded list of platform tags, e.g. ["web","ios"].
	SupportedPlatforms string `gorm:"column:supported_platforms" json:"supported_platforms,omitempty"`

	APIAvailable bool   `gorm:"column:api_available" json:"api_available"`
	Email        string `gorm:"column:email" json:"email,omitempty"`

	Featured bool `gorm:"column:featured" json:"featured"`
	Likes    int  `gorm:"column:likes" json:"likes"`

	LastChecked    *time.Time `gorm:"column:last_checked" json:"last_checked,omitempty"`
	ResponseTimeMS *int64     `gorm:"column:response_time_ms" json:"response_time_ms,omitempty"`
}

// TableName maps the record onto the directory's websites table.
func (Tool) TableName() string {
	return "websites"
}

// Patch is a sparse set of column updates for a single tool record.
// Keys are websites column names; only changed or newly filled fields appear.
type Patch map[string]any

// Column names used as Patch keys. The enrichment driver maps extractor
// output onto these explicitly, field by field.
const (
	ColLogoURL            = "logo_url"
	ColTagline            = "tagline"
	ColTwitterURL         = "twitter_url"
	ColGithubURL          = "github_url"
	ColLinkedinURL        = "linkedin_url"
	ColPricingModel       = "pricing_model"
	ColHasFreeVersion     = "has_free_version"
	ColBasePrice          = "base_price"
	ColIOSAppURL          = "ios_app_url"
	ColAndroidAppURL      = "android_app_url"
	ColSupportedPlatforms = "supported_platforms"
	ColAPIAvailable       = "api_available"
	ColEmail              = "email"
	ColLastChecked        = "last_checked"
	ColResponseTimeMS     = "response_time_ms"
)
