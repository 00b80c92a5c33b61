package port

import (
	"context"

	"viewpulse/internal/core/domain"
)

// Notifier delivers user-facing campaign events. Delivery is best effort:
// the tracker invokes it exactly once per active-to-completed transition
// and ignores the returned error beyond logging.
type Notifier interface {
	CampaignCompleted(ctx context.Context, c *domain.Campaign) error
}
