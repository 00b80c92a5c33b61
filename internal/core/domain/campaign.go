package domain

import "time"

// Status is the coarse-grained lifecycle state of a campaign. Only active
// campaigns are eligible for view tracking; the tracker may move a campaign
// from active to completed and performs no other transition.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Campaign represents a view-growth campaign for a single YouTube video.
// Budget is stored in integer units (e.g. cents). StartingViews is the
// baseline the campaign is measured against; CurrentViews is the latest
// absolute count fetched from the provider.
type Campaign struct {
	ID               string
	UserID           string
	Title            string
	VideoURL         string
	Status           Status
	Budget           int64
	TargetViews      int64
	StartingViews    int64
	CurrentViews     int64
	FetchFailures    int
	TrackingDegraded bool
	LastViewUpdate   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ViewsGained returns the views accrued since the baseline, never negative.
// The provider offers no strict monotonicity guarantee, so a fetched count
// below the baseline clamps to zero instead of going negative.
func (c *Campaign) ViewsGained() int64 {
	return ViewsGained(c.CurrentViews, c.StartingViews)
}

// TargetReached reports whether the campaign has gained at least its target.
func (c *Campaign) TargetReached() bool {
	return c.ViewsGained() >= c.TargetViews
}

// ViewsGained computes max(0, current-starting) for arbitrary counts.
func ViewsGained(current, starting int64) int64 {
	if current < starting {
		return 0
	}
	return current - starting
}
