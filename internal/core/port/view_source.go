package port

import (
	"context"
	"errors"
)

var (
	// ErrStatsUnavailable means the statistics provider could not supply a
	// count right now (outage, malformed response, missing statistics),
	// although the video itself may well exist. Callers skip and retry.
	ErrStatsUnavailable = errors.New("view statistics unavailable")

	// ErrVideoNotFound means the hosting platform no longer knows the
	// video. Callers skip; retries are unlikely to recover.
	ErrVideoNotFound = errors.New("video not found")
)

// ViewSource provides the current public view count for a video. A measured
// count is always non-negative; failures map to one of the typed errors
// above and are never fabricated into a plausible value.
type ViewSource interface {
	ViewCount(ctx context.Context, videoID string) (int64, error)
}
