package configs

import "time"

// Tracker configures the view reconciliation loop.
type Tracker struct {
	// Interval is the tick period of the reconciliation loop.
	Interval time.Duration `env:"INTERVAL" envDefault:"30s"`
	// Concurrency caps simultaneous view-count fetches within one tick.
	Concurrency int `env:"CONCURRENCY" envDefault:"8"`
	// DegradedAfter is the number of consecutive fetch failures after
	// which a campaign is flagged as tracking-degraded.
	DegradedAfter int `env:"DEGRADED_AFTER" envDefault:"10"`
}
