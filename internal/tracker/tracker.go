// Package tracker runs the periodic reconciliation of active campaigns
// against the public view counts of their videos.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"viewpulse/internal/adapter/youtube"
	"viewpulse/internal/config/configs"
	"viewpulse/internal/core/domain"
	"viewpulse/internal/core/port"
)

// Tracker is a supervised background task. On every tick it lists active
// campaigns, fetches the current view count for each with a bounded worker
// pool, persists the progress, and completes campaigns that reached their
// target. Any per-campaign failure degrades to a skip for that tick; the
// campaign is retried on the next one.
type Tracker struct {
	repo     port.CampaignRepository
	source   port.ViewSource
	notifier port.Notifier
	logger   *slog.Logger
	cfg      configs.Tracker

	started atomic.Bool
	running atomic.Bool
}

// New creates a tracker. Zero or negative config values fall back to the
// defaults (30s interval, 8 workers, degraded after 10 failures).
func New(repo port.CampaignRepository, source port.ViewSource, notifier port.Notifier, logger *slog.Logger, cfg configs.Tracker) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.DegradedAfter <= 0 {
		cfg.DegradedAfter = 10
	}
	return &Tracker{
		repo:     repo,
		source:   source,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
	}
}

// Start launches the reconciliation loop in a background goroutine and
// returns a stop function. Start is idempotent while the loop is armed:
// later calls return a no-op stop. The real stop cancels the loop and
// re-arms Start, so the caller can restart tracking later.
func (t *Tracker) Start(parent context.Context) func() {
	if !t.started.CompareAndSwap(false, true) {
		return func() {}
	}
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(t.cfg.Interval)
		defer ticker.Stop()

		t.RunOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.RunOnce(ctx)
			}
		}
	}()

	return func() {
		cancel()
		t.started.Store(false)
	}
}

// RunOnce executes a single reconciliation tick. A tick that arrives while
// the previous one is still in flight is skipped, so two ticks never race
// on the same campaign ids; the next tick re-reads the full active set and
// loses nothing.
func (t *Tracker) RunOnce(ctx context.Context) {
	if !t.running.CompareAndSwap(false, true) {
		t.logger.Warn("previous tick still running, skipping tick")
		return
	}
	defer t.running.Store(false)

	campaigns, err := t.repo.ListByStatus(ctx, domain.StatusActive)
	if err != nil {
		t.logger.Error("list active campaigns failed", slog.Any("error", err))
		return
	}
	if len(campaigns) == 0 {
		return
	}
	t.logger.Debug("reconciling active campaigns", slog.Int("count", len(campaigns)))

	var g errgroup.Group
	g.SetLimit(t.cfg.Concurrency)
	for i := range campaigns {
		c := campaigns[i]
		g.Go(func() error {
			t.reconcile(ctx, &c)
			return nil
		})
	}
	_ = g.Wait()
}

// reconcile processes one campaign. Nothing it does may abort the rest of
// the tick.
func (t *Tracker) reconcile(ctx context.Context, c *domain.Campaign) {
	log := t.logger.With(slog.String("campaign_id", c.ID))

	videoID, ok := youtube.ExtractVideoID(c.VideoURL)
	if !ok {
		// Not an error condition: an unsupported URL simply never makes
		// progress.
		log.Debug("video url not resolvable, skipping")
		return
	}

	current, err := t.source.ViewCount(ctx, videoID)
	if err != nil {
		t.recordFailure(ctx, c, err, log)
		return
	}

	starting := c.StartingViews
	if starting == 0 {
		// Baseline fallback for campaigns activated while the provider
		// was unavailable. Their first successful fetch becomes the
		// baseline, so the first observed gain is zero.
		starting = current
	}

	gained := domain.ViewsGained(current, starting)
	status := c.Status
	completed := gained >= c.TargetViews
	if completed {
		status = domain.StatusCompleted
	}

	err = t.repo.UpdateViewProgress(ctx, c.ID, port.ViewProgressUpdate{
		CurrentViews:   current,
		StartingViews:  starting,
		Status:         status,
		LastViewUpdate: time.Now().UTC(),
	})
	if err != nil {
		log.Error("persist view progress failed", slog.Any("error", err))
		return
	}

	if completed && c.Status != domain.StatusCompleted {
		c.CurrentViews = current
		c.StartingViews = starting
		c.Status = domain.StatusCompleted
		log.Info("campaign reached its target",
			slog.Int64("views_gained", gained),
			slog.Int64("target_views", c.TargetViews))
		if err := t.notifier.CampaignCompleted(ctx, c); err != nil {
			log.Warn("completion notification failed", slog.Any("error", err))
		}
	}
}

// recordFailure bumps the campaign's consecutive failure counter and keeps
// the two unavailability causes apart in the log.
func (t *Tracker) recordFailure(ctx context.Context, c *domain.Campaign, fetchErr error, log *slog.Logger) {
	failures, err := t.repo.RecordFetchFailure(ctx, c.ID, t.cfg.DegradedAfter)
	if err != nil {
		log.Error("record fetch failure failed", slog.Any("error", err))
		return
	}
	switch {
	case errors.Is(fetchErr, port.ErrVideoNotFound):
		log.Warn("video no longer exists",
			slog.String("video_url", c.VideoURL),
			slog.Int("consecutive_failures", failures))
	default:
		log.Debug("view statistics unavailable, will retry",
			slog.Int("consecutive_failures", failures))
	}
	if failures == t.cfg.DegradedAfter {
		log.Warn("campaign tracking degraded",
			slog.Int("consecutive_failures", failures))
	}
}
