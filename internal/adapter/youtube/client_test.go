package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"viewpulse/internal/config/configs"
	"viewpulse/internal/core/port"
)

func testClient(apiURL, oembedURL string) *Client {
	return NewClient(configs.YouTube{
		APIKey:        "test-key",
		APIBaseURL:    apiURL,
		OEmbedBaseURL: oembedURL,
		Timeout:       2 * time.Second,
	})
}

func TestViewCountMeasured(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "dQw4w9WgXcQ" {
			t.Errorf("unexpected video id %q", got)
		}
		if got := r.URL.Query().Get("part"); got != "statistics" {
			t.Errorf("unexpected part %q", got)
		}
		w.Write([]byte(`{"items":[{"statistics":{"viewCount":"1600"}}]}`))
	}))
	defer api.Close()

	c := testClient(api.URL, "http://unused.invalid")
	count, err := c.ViewCount(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ViewCount error: %v", err)
	}
	if count != 1600 {
		t.Fatalf("got count %d, want 1600", count)
	}
}

// A present but malformed viewCount coerces to 0 rather than an error.
func TestViewCountMalformedCoercesToZero(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"statistics":{"viewCount":"12abc"}}]}`))
	}))
	defer api.Close()

	c := testClient(api.URL, "http://unused.invalid")
	count, err := c.ViewCount(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ViewCount error: %v", err)
	}
	if count != 0 {
		t.Fatalf("got count %d, want 0", count)
	}
}

// When statistics are unavailable but the video exists, the client must
// report unavailability instead of fabricating a count.
func TestViewCountStatsUnavailable(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer api.Close()
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"some video"}`))
	}))
	defer oembed.Close()

	c := testClient(api.URL, oembed.URL)
	_, err := c.ViewCount(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, port.ErrStatsUnavailable) {
		t.Fatalf("got err %v, want ErrStatsUnavailable", err)
	}
}

func TestViewCountVideoNotFound(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer api.Close()
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer oembed.Close()

	c := testClient(api.URL, oembed.URL)
	_, err := c.ViewCount(context.Background(), "gone")
	if !errors.Is(err, port.ErrVideoNotFound) {
		t.Fatalf("got err %v, want ErrVideoNotFound", err)
	}
}

// A transient failure of the existence check is a provider outage, not
// evidence the video is gone.
func TestViewCountSecondaryOutage(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer api.Close()
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer oembed.Close()

	c := testClient(api.URL, oembed.URL)
	_, err := c.ViewCount(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, port.ErrStatsUnavailable) {
		t.Fatalf("got err %v, want ErrStatsUnavailable", err)
	}
}

// Without an API key the statistics endpoint is never queried; the client
// goes straight to the existence check.
func TestViewCountNoAPIKeySkipsStatistics(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("statistics endpoint must not be called without an API key")
	}))
	defer api.Close()
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"some video"}`))
	}))
	defer oembed.Close()

	c := NewClient(configs.YouTube{
		APIBaseURL:    api.URL,
		OEmbedBaseURL: oembed.URL,
		Timeout:       2 * time.Second,
	})
	_, err := c.ViewCount(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, port.ErrStatsUnavailable) {
		t.Fatalf("got err %v, want ErrStatsUnavailable", err)
	}
}

// A full provider outage says nothing about the video, so it maps to
// stats-unavailable, not video-not-found.
func TestViewCountTotalOutage(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	api.Close()
	oembed.Close()

	c := testClient(api.URL, oembed.URL)
	_, err := c.ViewCount(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, port.ErrStatsUnavailable) {
		t.Fatalf("got err %v, want ErrStatsUnavailable", err)
	}
}
