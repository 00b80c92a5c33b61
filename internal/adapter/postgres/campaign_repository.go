package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"viewpulse/internal/core/domain"
	"viewpulse/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, user_id, title, video_url, status, budget,
    target_views, starting_views, current_views, fetch_failures,
    tracking_degraded, last_view_update, created_at, updated_at`

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.VideoURL,
		&c.Status,
		&c.Budget,
		&c.TargetViews,
		&c.StartingViews,
		&c.CurrentViews,
		&c.FetchFailures,
		&c.TrackingDegraded,
		&c.LastViewUpdate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create stores a new campaign.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
        (id, user_id, title, video_url, status, budget, target_views,
         starting_views, current_views, fetch_failures, tracking_degraded,
         created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.ID, c.UserID, c.Title, c.VideoURL, c.Status, c.Budget,
		c.TargetViews, c.StartingViews, c.CurrentViews, c.FetchFailures,
		c.TrackingDegraded, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetByID returns a campaign by id, or nil when it does not exist.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns), id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectOneRow(rows, scanCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns all campaigns owned by a user, newest first.
func (r *CampaignRepository) ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM campaigns WHERE user_id = $1 ORDER BY created_at DESC`, campaignColumns), userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// ListByStatus returns all campaigns in the given lifecycle state, oldest
// first so long-waiting campaigns are reconciled before fresh ones.
func (r *CampaignRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM campaigns WHERE status = $1 ORDER BY created_at`, campaignColumns), status)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// Activate moves a pending campaign to active with the given baseline. The
// status guard in the WHERE clause makes activation idempotent-safe: an
// already active or terminal campaign is left untouched.
func (r *CampaignRepository) Activate(ctx context.Context, id string, startingViews int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns
        SET status = $2, starting_views = $3, current_views = $3, updated_at = now()
        WHERE id = $1 AND status = $4`,
		id, domain.StatusActive, startingViews, domain.StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotActivatable
	}
	return nil
}

// UpdateViewProgress persists the outcome of one reconciliation pass and
// resets the failure tracking state.
func (r *CampaignRepository) UpdateViewProgress(ctx context.Context, id string, upd port.ViewProgressUpdate) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns
        SET current_views = $2, starting_views = $3, status = $4,
            last_view_update = $5, fetch_failures = 0,
            tracking_degraded = FALSE, updated_at = now()
        WHERE id = $1`,
		id, upd.CurrentViews, upd.StartingViews, upd.Status, upd.LastViewUpdate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// RecordFetchFailure bumps the consecutive failure counter and flags the
// campaign degraded once the counter reaches degradedAfter.
func (r *CampaignRepository) RecordFetchFailure(ctx context.Context, id string, degradedAfter int) (int, error) {
	var failures int
	err := r.pool.QueryRow(ctx, `UPDATE campaigns
        SET fetch_failures = fetch_failures + 1,
            tracking_degraded = (fetch_failures + 1 >= $2),
            updated_at = now()
        WHERE id = $1
        RETURNING fetch_failures`, id, degradedAfter).Scan(&failures)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, port.ErrCampaignNotFound
	}
	if err != nil {
		return 0, err
	}
	return failures, nil
}

// GetStats returns campaign counts per lifecycle state and the total views
// delivered, optionally scoped to one owner.
func (r *CampaignRepository) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []any{}
	whereUser := ""
	if req.UserID != nil {
		whereUser = "WHERE user_id = $1"
		args = append(args, *req.UserID)
	}
	query := fmt.Sprintf(`SELECT
        COALESCE(count(*) FILTER (WHERE status = 'pending'), 0),
        COALESCE(count(*) FILTER (WHERE status = 'active'), 0),
        COALESCE(count(*) FILTER (WHERE status = 'completed'), 0),
        COALESCE(count(*) FILTER (WHERE status = 'cancelled'), 0),
        COALESCE(sum(GREATEST(current_views - starting_views, 0))
            FILTER (WHERE status IN ('active', 'completed')), 0)
        FROM campaigns %s`, whereUser)

	var resp port.StatsResp
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&resp.Pending, &resp.Active, &resp.Completed, &resp.Cancelled,
		&resp.ViewsDelivered)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
