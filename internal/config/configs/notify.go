package configs

import "time"

// Notify configures completion notifications. When WebhookURL is empty,
// notifications are written to the log only.
type Notify struct {
	// WebhookURL receives a JSON payload per completed campaign.
	WebhookURL string `env:"WEBHOOK_URL"`
	// Timeout bounds each webhook delivery.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}
