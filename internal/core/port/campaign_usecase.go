package port

import (
	"context"
	"errors"

	"viewpulse/internal/core/domain"
)

var (
	ErrInvalidVideoURL = errors.New("unsupported video url")
	ErrNotActivatable  = errors.New("campaign is not in a state that can be activated")
)

// CampaignUseCase defines the business operations exposed by the service.
// This interface is the primary port into the application domain. Mock
// implementations can be generated from this interface for testing.
type CampaignUseCase interface {
	// CreateCampaign validates the video URL and stores a new campaign in
	// the pending state. ErrInvalidVideoURL is returned when no video id
	// can be extracted from the URL.
	CreateCampaign(ctx context.Context, req CreateCampaignReq) (*domain.Campaign, error)

	// ActivateCampaign moves a pending campaign to active and eagerly
	// captures the view baseline from the statistics provider. When the
	// provider is unavailable the campaign still activates with a zero
	// baseline, which the tracker fills in on its first successful fetch.
	ActivateCampaign(ctx context.Context, id string) (*domain.Campaign, error)

	// GetCampaign returns a single campaign. ErrCampaignNotFound is
	// returned for unknown ids.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)

	// ListCampaigns returns all campaigns owned by a user, newest first.
	ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error)

	// GetStats returns aggregated campaign statistics, optionally scoped
	// to a single owner.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// CreateCampaignReq carries the fields needed to register a new campaign.
// It is a DTO used by the HTTP layer and does not contain domain behaviour.
type CreateCampaignReq struct {
	UserID      string
	Title       string
	VideoURL    string
	Budget      int64
	TargetViews int64
}

// StatsReq scopes a statistics query. A nil UserID aggregates across all
// owners.
type StatsReq struct {
	UserID *string
}

// StatsResp contains aggregated campaign counts per lifecycle state and the
// total views delivered across completed and active campaigns.
type StatsResp struct {
	Pending        int64
	Active         int64
	Completed      int64
	Cancelled      int64
	ViewsDelivered int64
}
