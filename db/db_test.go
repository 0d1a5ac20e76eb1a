package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	dbPath := filepath.Join(os.TempDir(), "yt-gist-test.db")
	os.Remove(dbPath)

	if err := InitializeDB(dbPath); err != nil {
		panic("Failed to initialize database: " + err.Error())
	}

	code := m.Run()

	DB.Close()
	os.Remove(dbPath)
	os.Exit(code)
}

func TestRecordAndListFetches(t *testing.T) {
	ctx := context.Background()

	first := Fetch{
		VideoID:       "dQw4w9WgXcQ",
		VideoURL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:         "Test Video",
		Language:      "ja",
		SubtitleLines: 42,
	}
	second := Fetch{
		VideoID:  "aaaaaaaaaaa",
		VideoURL: "https://www.youtube.com/watch?v=aaaaaaaaaaa",
		Title:    "Another Video",
	}

	if err := RecordFetch(ctx, first); err != nil {
		t.Fatalf("Failed to record fetch: %v", err)
	}
	if err := RecordFetch(ctx, second); err != nil {
		t.Fatalf("Failed to record fetch: %v", err)
	}

	fetches, err := RecentFetches(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list fetches: %v", err)
	}
	if len(fetches) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(fetches))
	}

	// Newest first
	if fetches[0].VideoID != "aaaaaaaaaaa" {
		t.Errorf("expected newest fetch first, got %s", fetches[0].VideoID)
	}
	if fetches[1].Title != "Test Video" {
		t.Errorf("expected title 'Test Video', got %s", fetches[1].Title)
	}
	if fetches[1].Language != "ja" {
		t.Errorf("expected language 'ja', got %s", fetches[1].Language)
	}
	if fetches[1].SubtitleLines != 42 {
		t.Errorf("expected 42 subtitle lines, got %d", fetches[1].SubtitleLines)
	}
	if fetches[1].FetchedAt.IsZero() {
		t.Error("expected fetched_at to be set")
	}
}

func TestDeleteFetches(t *testing.T) {
	ctx := context.Background()

	if err := DeleteFetches(ctx, "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Failed to delete fetches: %v", err)
	}

	fetches, err := RecentFetches(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list fetches: %v", err)
	}
	for _, f := range fetches {
		if f.VideoID == "dQw4w9WgXcQ" {
			t.Error("expected fetches for video to be deleted")
		}
	}
}

func TestInitializeDB_Error(t *testing.T) {
	if err := InitializeDB("/proc/invalid/path/to.db"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
