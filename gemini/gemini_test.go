package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	apperrors "yt-gist/errors"
)

type roundTripperFunc func(req *http.Request) *http.Response

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func newTestClient(rt roundTripperFunc) *Client {
	c := NewClient(Config{
		BaseURL: "https://generativelanguage.googleapis.com",
		Model:   "models/gemini-1.5-pro-latest",
		Timeout: 5 * time.Second,
	})
	c.HTTPClient.Transport = rt
	return c
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	calls := 0
	client := newTestClient(func(req *http.Request) *http.Response {
		calls++
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("{}"))}
	})

	_, err := client.Generate(context.Background(), "prompt", "text", "")
	if err == nil {
		t.Fatal("expected error for missing API key, got nil")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusUnauthorized {
		t.Errorf("expected unauthorized AppError, got %v", err)
	}

	if calls != 0 {
		t.Errorf("expected no network calls, got %d", calls)
	}
}

func TestGenerate_SingleCandidate(t *testing.T) {
	client := newTestClient(func(req *http.Request) *http.Response {
		if req.URL.Query().Get("key") != "secret" {
			t.Errorf("expected key query parameter, got %q", req.URL.RawQuery)
		}
		if !strings.HasSuffix(req.URL.Path, "models/gemini-1.5-pro-latest:generateContent") {
			t.Errorf("unexpected path: %s", req.URL.Path)
		}

		var body generateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(body.Contents) != 1 || body.Contents[0].Role != "user" {
			t.Errorf("expected one user turn, got %+v", body.Contents)
		}
		if got := body.Contents[0].Parts[0].Text; got != "prompt\n\nsource text" {
			t.Errorf("expected prompt joined with blank line, got %q", got)
		}

		return &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(
				`{"candidates":[{"content":{"parts":[{"text":"Hello"}]}}]}`)),
		}
	})

	got, err := client.Generate(context.Background(), "prompt", "source text", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	client := newTestClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"candidates":[]}`)),
		}
	})

	got, err := client.Generate(context.Background(), "prompt", "text", "secret")
	if err != nil {
		t.Fatalf("expected no error for empty candidates, got %v", err)
	}
	if got != NoResponseMessage {
		t.Errorf("expected %q, got %q", NoResponseMessage, got)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	client := newTestClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"invalid key"}}`)),
		}
	})

	_, err := client.Generate(context.Background(), "prompt", "text", "secret")
	if err == nil {
		t.Fatal("expected error for HTTP 400, got nil")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "invalid key") {
		t.Errorf("expected status and body in error, got %v", err)
	}
}
