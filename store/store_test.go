package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"yt-gist/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestLoadPrompts_FirstRunCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	prompts, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	if !reflect.DeepEqual(prompts, models.DefaultPrompts) {
		t.Errorf("expected the built-in default prompts, got %v", prompts)
	}
	if len(prompts) != 4 {
		t.Errorf("expected exactly four default prompts, got %d", len(prompts))
	}

	// A settings file matching the defaults must now exist.
	if _, err := os.Stat(filepath.Join(dir, "setting.json")); err != nil {
		t.Errorf("expected settings file to be created: %v", err)
	}
	again, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("failed to reload prompts: %v", err)
	}
	if !reflect.DeepEqual(again, prompts) {
		t.Errorf("reload mismatch: got %v, want %v", again, prompts)
	}
}

func TestSaveAndLoadPrompts(t *testing.T) {
	s := newTestStore(t)

	custom := []string{"first prompt", "second prompt", "second prompt"}
	if err := s.SavePrompts(custom); err != nil {
		t.Fatalf("failed to save prompts: %v", err)
	}

	got, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	if !reflect.DeepEqual(got, custom) {
		t.Errorf("expected %v (duplicates preserved), got %v", custom, got)
	}
}

func TestSavePrompts_Empty(t *testing.T) {
	s := newTestStore(t)

	if err := s.SavePrompts(nil); err != nil {
		t.Fatalf("failed to save empty prompts: %v", err)
	}
	got, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty prompt list, got %v", got)
	}
}

func TestAPIKeyRoundTrip(t *testing.T) {
	s := newTestStore(t)

	key, err := s.LoadAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key before save, got %q", key)
	}

	if err := s.SaveAPIKey("  secret-key \n"); err != nil {
		t.Fatalf("failed to save key: %v", err)
	}
	key, err = s.LoadAPIKey()
	if err != nil {
		t.Fatalf("failed to load key: %v", err)
	}
	if key != "secret-key" {
		t.Errorf("expected trimmed key, got %q", key)
	}
}

func TestResultRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LoadResult(); err != ErrNoResult {
		t.Errorf("expected ErrNoResult before save, got %v", err)
	}

	original := models.Video{
		VideoURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:        "Test Video",
		Description:  "A description",
		ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		Subtitles:    []string{"line one", "line two"},
	}

	if err := s.SaveResult(original); err != nil {
		t.Fatalf("failed to save result: %v", err)
	}

	got, err := s.LoadResult()
	if err != nil {
		t.Fatalf("failed to load result: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, original)
	}
}

func TestSaveResult_Overwrites(t *testing.T) {
	s := newTestStore(t)

	first := models.Video{VideoURL: "https://www.youtube.com/watch?v=aaaaaaaaaaa", Title: "first"}
	second := models.Video{VideoURL: "https://www.youtube.com/watch?v=bbbbbbbbbbb", Title: "second"}

	if err := s.SaveResult(first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveResult(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadResult()
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "second" {
		t.Errorf("expected the newer result, got %q", got.Title)
	}
}
