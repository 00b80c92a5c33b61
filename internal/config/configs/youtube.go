package configs

import "time"

// YouTube configures the view-count client. APIKey authorises requests to
// the Data API; statistics are skipped entirely when it is empty and the
// client falls back to the existence check. Base URLs are overridable so
// tests can target a local server.
type YouTube struct {
	// APIKey is the YouTube Data API v3 key.
	APIKey string `env:"API_KEY"`
	// APIBaseURL is the Data API base, without a trailing slash.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://www.googleapis.com/youtube/v3"`
	// OEmbedBaseURL is the oEmbed endpoint used as an existence check.
	OEmbedBaseURL string `env:"OEMBED_BASE_URL" envDefault:"https://www.youtube.com/oembed"`
	// Timeout bounds each outbound request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
