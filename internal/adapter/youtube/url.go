package youtube

import "regexp"

// Video id patterns for the URL shapes users paste into campaign forms:
// watch?v=, youtu.be/, embed/ and shorts/ links. The id segment stops at
// the first of '&', newline, '?' or '#' so trailing query parameters and
// fragments are discarded.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#]+)`),
}

// ExtractVideoID extracts the canonical video id from a user-supplied URL.
// It never fails loudly: unsupported shapes return ok=false and callers
// treat that as a skip condition.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
