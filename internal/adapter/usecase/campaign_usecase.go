package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"viewpulse/internal/adapter/youtube"
	"viewpulse/internal/core/domain"
	"viewpulse/internal/core/port"
)

// CampaignUseCase provides business logic for campaign registration and
// activation. It orchestrates domain and repositories to implement the
// CampaignUseCase interface.
type CampaignUseCase struct {
	repo   port.CampaignRepository
	source port.ViewSource
	logger *slog.Logger
}

// NewCampaignUseCase creates a new usecase with the provided repository and
// view source. The view source is used for eager baseline capture at
// activation time.
func NewCampaignUseCase(repo port.CampaignRepository, source port.ViewSource, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, source: source, logger: logger}
}

// CreateCampaign validates the request and stores a new pending campaign.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if req.UserID == "" {
		return nil, errors.New("empty user id")
	}
	if req.Title == "" {
		return nil, errors.New("empty title")
	}
	if req.TargetViews <= 0 {
		return nil, errors.New("target views must be positive")
	}
	if _, ok := youtube.ExtractVideoID(req.VideoURL); !ok {
		return nil, port.ErrInvalidVideoURL
	}

	c := &domain.Campaign{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Title:       req.Title,
		VideoURL:    req.VideoURL,
		Status:      domain.StatusPending,
		Budget:      req.Budget,
		TargetViews: req.TargetViews,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ActivateCampaign moves a pending campaign to active. The view baseline is
// captured here, at activation time, so progress is measured from the
// moment the customer paid rather than from the tracker's first successful
// fetch. When the provider is down the campaign activates with a zero
// baseline and the tracker fills it in later.
func (u *CampaignUseCase) ActivateCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrCampaignNotFound
	}
	if c.Status != domain.StatusPending {
		return nil, port.ErrNotActivatable
	}

	var baseline int64
	if videoID, ok := youtube.ExtractVideoID(c.VideoURL); ok {
		baseline, err = u.source.ViewCount(ctx, videoID)
		if err != nil {
			u.logger.Warn("baseline capture failed, activating with zero baseline",
				slog.String("campaign_id", c.ID),
				slog.Any("error", err))
			baseline = 0
		}
	}

	if err = u.repo.Activate(ctx, id, baseline); err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, id)
}

// GetCampaign returns a single campaign by id.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrCampaignNotFound
	}
	return c, nil
}

// ListCampaigns returns all campaigns owned by a user, newest first.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error) {
	return u.repo.ListByUser(ctx, userID)
}

// GetStats returns aggregated campaign statistics.
func (u *CampaignUseCase) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	return u.repo.GetStats(ctx, req)
}
