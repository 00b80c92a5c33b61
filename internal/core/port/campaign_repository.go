package port

import (
	"context"
	"errors"
	"time"

	"viewpulse/internal/core/domain"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// ViewProgressUpdate is the field set persisted after a successful
// reconciliation pass. Status carries the (possibly unchanged) lifecycle
// state; a successful pass also clears the consecutive fetch-failure
// counter and the degraded flag.
type ViewProgressUpdate struct {
	CurrentViews   int64
	StartingViews  int64
	Status         domain.Status
	LastViewUpdate time.Time
}

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Implementations must scope writes
// per campaign id; there are no cross-campaign invariants.
type CampaignRepository interface {
	// Create stores a new campaign. ID and timestamps must be set by the
	// caller.
	Create(ctx context.Context, c *domain.Campaign) error
	// GetByID returns a campaign by id, or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	// ListByUser returns all campaigns owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error)
	// ListByStatus returns all campaigns in the given lifecycle state.
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Campaign, error)
	// Activate moves a pending campaign into the active state and records
	// the view baseline captured at activation time. A zero baseline means
	// the provider was unavailable at activation; the tracker initialises
	// it on its first successful fetch instead.
	Activate(ctx context.Context, id string, startingViews int64) error
	// UpdateViewProgress persists the outcome of one reconciliation pass
	// and resets the fetch-failure counter.
	UpdateViewProgress(ctx context.Context, id string, upd ViewProgressUpdate) error
	// RecordFetchFailure increments the campaign's consecutive fetch-failure
	// counter, marking the campaign degraded once the counter reaches
	// degradedAfter. It returns the new counter value.
	RecordFetchFailure(ctx context.Context, id string, degradedAfter int) (int, error)
	// GetStats returns aggregated campaign statistics, optionally scoped to
	// a single owner.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}
