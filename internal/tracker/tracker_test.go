package tracker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"viewpulse/internal/config/configs"
	"viewpulse/internal/core/domain"
	"viewpulse/internal/core/port"
	"viewpulse/internal/core/port/mocks"
)

func newTestTracker(t *testing.T) (*Tracker, *mocks.MockCampaignRepository, *mocks.MockViewSource, *mocks.MockNotifier) {
	repo := mocks.NewMockCampaignRepository(t)
	source := mocks.NewMockViewSource(t)
	notifier := mocks.NewMockNotifier(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, source, notifier, logger, configs.Tracker{}), repo, source, notifier
}

func activeCampaign(id, videoID string, starting, target int64) domain.Campaign {
	return domain.Campaign{
		ID:            id,
		UserID:        "u1",
		Title:         "campaign " + id,
		VideoURL:      "https://www.youtube.com/watch?v=" + videoID,
		Status:        domain.StatusActive,
		TargetViews:   target,
		StartingViews: starting,
	}
}

// TestFirstFetchSetsBaseline ensures a campaign with a zero baseline adopts
// the first fetched count as its baseline, so the first observed gain is 0.
func TestFirstFetchSetsBaseline(t *testing.T) {
	trk, repo, source, _ := newTestTracker(t)

	c := activeCampaign("c1", "dQw4w9WgXcQ", 0, 500)
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)
	source.EXPECT().
		ViewCount(mock.Anything, "dQw4w9WgXcQ").
		Return(int64(52000), nil)

	var (
		mu  sync.Mutex
		got port.ViewProgressUpdate
	)
	repo.EXPECT().
		UpdateViewProgress(mock.Anything, "c1", mock.AnythingOfType("port.ViewProgressUpdate")).
		Run(func(ctx context.Context, id string, upd port.ViewProgressUpdate) {
			mu.Lock()
			defer mu.Unlock()
			got = upd
		}).
		Return(nil)

	trk.RunOnce(context.Background())

	if got.StartingViews != 52000 {
		t.Fatalf("starting views = %d, want 52000", got.StartingViews)
	}
	if got.CurrentViews != 52000 {
		t.Fatalf("current views = %d, want 52000", got.CurrentViews)
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", got.Status)
	}
	if got.LastViewUpdate.IsZero() {
		t.Fatal("last view update not set")
	}
}

// TestCompletionNotifiesOnce covers the end-to-end completion scenario:
// starting 1000, target 500, fetch 1600 -> gained 600 >= 500.
func TestCompletionNotifiesOnce(t *testing.T) {
	trk, repo, source, notifier := newTestTracker(t)

	c := activeCampaign("c1", "dQw4w9WgXcQ", 1000, 500)
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)
	source.EXPECT().
		ViewCount(mock.Anything, "dQw4w9WgXcQ").
		Return(int64(1600), nil)

	var (
		mu  sync.Mutex
		got port.ViewProgressUpdate
	)
	repo.EXPECT().
		UpdateViewProgress(mock.Anything, "c1", mock.AnythingOfType("port.ViewProgressUpdate")).
		Run(func(ctx context.Context, id string, upd port.ViewProgressUpdate) {
			mu.Lock()
			defer mu.Unlock()
			got = upd
		}).
		Return(nil)
	notifier.EXPECT().
		CampaignCompleted(mock.Anything, mock.AnythingOfType("*domain.Campaign")).
		Return(nil).
		Once()

	trk.RunOnce(context.Background())

	if got.Status != domain.StatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.CurrentViews != 1600 {
		t.Fatalf("current views = %d, want 1600", got.CurrentViews)
	}
}

// TestBelowTargetStaysActive: starting 1000, target 500, fetch 1400 ->
// gained 400 < 500, status unchanged, no notification.
func TestBelowTargetStaysActive(t *testing.T) {
	trk, repo, source, _ := newTestTracker(t)

	c := activeCampaign("c1", "dQw4w9WgXcQ", 1000, 500)
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)
	source.EXPECT().
		ViewCount(mock.Anything, "dQw4w9WgXcQ").
		Return(int64(1400), nil)

	var (
		mu  sync.Mutex
		got port.ViewProgressUpdate
	)
	repo.EXPECT().
		UpdateViewProgress(mock.Anything, "c1", mock.AnythingOfType("port.ViewProgressUpdate")).
		Run(func(ctx context.Context, id string, upd port.ViewProgressUpdate) {
			mu.Lock()
			defer mu.Unlock()
			got = upd
		}).
		Return(nil)

	trk.RunOnce(context.Background())

	if got.Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", got.Status)
	}
}

// TestPartialFailureIsolation ensures one campaign's fetch failure leaves
// the other campaign's update untouched within the same tick.
func TestPartialFailureIsolation(t *testing.T) {
	trk, repo, source, _ := newTestTracker(t)

	good := activeCampaign("good", "goodvideo01", 100, 1000)
	bad := activeCampaign("bad", "badvideo001", 100, 1000)
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{good, bad}, nil)

	source.EXPECT().
		ViewCount(mock.Anything, "goodvideo01").
		Return(int64(400), nil)
	source.EXPECT().
		ViewCount(mock.Anything, "badvideo001").
		Return(int64(0), port.ErrStatsUnavailable)

	repo.EXPECT().
		UpdateViewProgress(mock.Anything, "good", mock.AnythingOfType("port.ViewProgressUpdate")).
		Return(nil).
		Once()
	repo.EXPECT().
		RecordFetchFailure(mock.Anything, "bad", 10).
		Return(1, nil).
		Once()

	trk.RunOnce(context.Background())
}

// TestDegradedAtThreshold: the failure that brings the consecutive counter
// to the configured threshold still goes through RecordFetchFailure, which
// flags the campaign degraded.
func TestDegradedAtThreshold(t *testing.T) {
	trk, repo, source, _ := newTestTracker(t)

	c := activeCampaign("c1", "dQw4w9WgXcQ", 1000, 500)
	c.FetchFailures = 9
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)
	source.EXPECT().
		ViewCount(mock.Anything, "dQw4w9WgXcQ").
		Return(int64(0), port.ErrStatsUnavailable)
	repo.EXPECT().
		RecordFetchFailure(mock.Anything, "c1", 10).
		Return(10, nil).
		Once()

	trk.RunOnce(context.Background())
}

// TestDegradedCampaignRecoversOnSuccess: a campaign flagged degraded is
// still reconciled, and a successful pass persists through
// UpdateViewProgress, which resets the failure counter and the flag.
func TestDegradedCampaignRecoversOnSuccess(t *testing.T) {
	trk, repo, source, _ := newTestTracker(t)

	c := activeCampaign("c1", "dQw4w9WgXcQ", 1000, 500)
	c.FetchFailures = 10
	c.TrackingDegraded = true
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)
	source.EXPECT().
		ViewCount(mock.Anything, "dQw4w9WgXcQ").
		Return(int64(1400), nil)

	var (
		mu  sync.Mutex
		got port.ViewProgressUpdate
	)
	repo.EXPECT().
		UpdateViewProgress(mock.Anything, "c1", mock.AnythingOfType("port.ViewProgressUpdate")).
		Run(func(ctx context.Context, id string, upd port.ViewProgressUpdate) {
			mu.Lock()
			defer mu.Unlock()
			got = upd
		}).
		Return(nil).
		Once()

	trk.RunOnce(context.Background())

	if got.Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", got.Status)
	}
	if got.CurrentViews != 1400 {
		t.Fatalf("current views = %d, want 1400", got.CurrentViews)
	}
}

// TestUnresolvableURLSkipped: an unsupported URL is a silent skip, not a
// failure worth counting.
func TestUnresolvableURLSkipped(t *testing.T) {
	trk, repo, _, _ := newTestTracker(t)

	c := activeCampaign("c1", "ignored", 0, 500)
	c.VideoURL = "https://example.com/not-a-youtube-url"
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)

	trk.RunOnce(context.Background())
}

// TestOverlapGuard: a tick arriving while the previous one is in flight is
// skipped entirely.
func TestOverlapGuard(t *testing.T) {
	trk, _, _, _ := newTestTracker(t)

	trk.running.Store(true)
	trk.RunOnce(context.Background())
	trk.running.Store(false)
}

// TestStartStopRearms: stopping the loop re-arms Start so tracking can be
// restarted later; a no-op stop from a redundant Start does not.
func TestStartStopRearms(t *testing.T) {
	trk, repo, _, _ := newTestTracker(t)
	trk.cfg.Interval = time.Hour

	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return(nil, nil).
		Maybe()

	stop := trk.Start(context.Background())
	if !trk.started.Load() {
		t.Fatal("expected tracker to be armed after Start")
	}

	noop := trk.Start(context.Background())
	noop()
	if !trk.started.Load() {
		t.Fatal("a redundant Start's stop must not disarm the tracker")
	}

	stop()
	if trk.started.Load() {
		t.Fatal("expected stop to re-arm Start")
	}
}

func TestListFailureAbortsTick(t *testing.T) {
	trk, repo, _, _ := newTestTracker(t)

	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return(nil, context.DeadlineExceeded)

	trk.RunOnce(context.Background())
}

// TestPersistenceFailureSkipsNotification: a failed write must not emit a
// completion notification even when the target was reached.
func TestPersistenceFailureSkipsNotification(t *testing.T) {
	trk, repo, source, _ := newTestTracker(t)

	c := activeCampaign("c1", "dQw4w9WgXcQ", 1000, 500)
	repo.EXPECT().
		ListByStatus(mock.Anything, domain.StatusActive).
		Return([]domain.Campaign{c}, nil)
	source.EXPECT().
		ViewCount(mock.Anything, "dQw4w9WgXcQ").
		Return(int64(1600), nil)
	repo.EXPECT().
		UpdateViewProgress(mock.Anything, "c1", mock.AnythingOfType("port.ViewProgressUpdate")).
		Return(context.DeadlineExceeded)

	trk.RunOnce(context.Background())
}
