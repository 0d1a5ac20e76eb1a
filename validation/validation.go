package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// videoIDPattern accepts the known YouTube URL shapes: watch?v=, embed/, v/,
// shorts/, youtu.be/ short links, and any URL carrying a v= query parameter.
// The capture group is the 11-character video ID.
var videoIDPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/|v/|shorts/|live/|.*v=)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID parses a raw input string into the 11-character video ID.
// Pure string matching, no network access. Returns false for anything that
// does not contain a recognizable YouTube URL.
func ExtractVideoID(rawInput string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(strings.TrimSpace(rawInput))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidateURL performs basic syntactic checks on a user-supplied URL. It does
// not probe the network; reachability problems surface from the fetch itself.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Message: "error: URL is required"}
	}

	rawURL = strings.TrimSpace(rawURL)

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return &ValidationError{Message: "error: invalid URL format"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Message: "error: URL must start with http or https"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Message: "error: URL must have a host"}
	}

	return nil
}

// ValidateVideoID checks that an ID already extracted elsewhere has the
// expected shape.
func ValidateVideoID(id string) error {
	if len(id) != 11 {
		return &ValidationError{Message: fmt.Sprintf("error: video ID must be 11 characters, got %d", len(id))}
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return &ValidationError{Message: "error: video ID contains invalid characters"}
		}
	}
	return nil
}
