package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var DB *sql.DB

// Fetch is one row of the fetch-history log: a record of a successful video
// fetch. The single-slot result file keeps only the latest result; the
// history keeps them all.
type Fetch struct {
	ID            int64     `json:"id"`
	VideoID       string    `json:"video_id"`
	VideoURL      string    `json:"video_url"`
	Title         string    `json:"title"`
	Language      string    `json:"language,omitempty"` // empty for default mode
	SubtitleLines int       `json:"subtitle_lines"`
	FetchedAt     time.Time `json:"fetched_at"`
}

func InitializeDB(dbPath string) error {
	logrus.Info("Initializing database")

	// Ensure the directory for the database file exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating directory for database: %v", err)
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("error opening database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(30 * time.Minute)

	_, err = DB.Exec(`CREATE TABLE IF NOT EXISTS fetches (
                    id INTEGER PRIMARY KEY AUTOINCREMENT,
                    video_id TEXT NOT NULL,
                    video_url TEXT NOT NULL,
                    title TEXT NOT NULL DEFAULT '',
                    language TEXT NOT NULL DEFAULT '',
                    subtitle_lines INTEGER NOT NULL DEFAULT 0,
                    fetched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	if err != nil {
		DB.Close()
		return fmt.Errorf("error creating table: %v", err)
	}

	return nil
}

func RecordFetch(ctx context.Context, f Fetch) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO fetches (video_id, video_url, title, language, subtitle_lines) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing statement: %v", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, f.VideoID, f.VideoURL, f.Title, f.Language, f.SubtitleLines); err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing statement: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}

func RecentFetches(ctx context.Context, limit int) ([]Fetch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := DB.QueryContext(ctx,
		"SELECT id, video_id, video_url, title, language, subtitle_lines, fetched_at FROM fetches ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %v", err)
	}
	defer rows.Close()

	var fetches []Fetch
	for rows.Next() {
		var f Fetch
		if err := rows.Scan(&f.ID, &f.VideoID, &f.VideoURL, &f.Title, &f.Language, &f.SubtitleLines, &f.FetchedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		fetches = append(fetches, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return fetches, nil
}

func DeleteFetches(ctx context.Context, videoID string) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM fetches WHERE video_id = ?")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing delete statement: %v", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, videoID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing delete statement: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}
