package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultUserAgent   = "ToolIndexBot/1.0 (https://github.com/toolindex/enrich)"
	DefaultHTTPTimeout = 15 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultToolDelay   = 3 * time.Second
	DefaultBatchLimit  = 20
)
