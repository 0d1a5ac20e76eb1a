// Package video orchestrates one fetch cycle: URL → video ID → metadata +
// transcript → VideoResult → persistence.
package video

import (
	"context"

	"yt-gist/db"
	apperrors "yt-gist/errors"
	"yt-gist/models"
	"yt-gist/store"
	"yt-gist/validation"
	"yt-gist/youtube"

	"github.com/sirupsen/logrus"
)

type Service struct {
	// MetadataFunc and TranscriptFunc default to the YouTube client and are
	// replaceable in tests.
	MetadataFunc   func(ctx context.Context, videoID string) (youtube.Metadata, error)
	TranscriptFunc func(ctx context.Context, videoID, lang string) youtube.TranscriptResult

	store *store.Store
}

func NewService(yt *youtube.Client, st *store.Store) *Service {
	return &Service{
		MetadataFunc:   yt.FetchMetadata,
		TranscriptFunc: yt.FetchTranscript,
		store:          st,
	}
}

// Fetch runs the full pipeline for a user-supplied URL. lang pins the
// subtitle language; empty selects the provider default. A metadata failure
// aborts the fetch before transcript retrieval, matching the reference
// behavior; transcript absence never aborts, it degrades to a placeholder
// line. Successful results overwrite the single persisted result slot.
func (s *Service) Fetch(ctx context.Context, rawURL, lang string) (models.Video, error) {
	const op = "VideoService.Fetch"

	videoID, ok := validation.ExtractVideoID(rawURL)
	if !ok {
		logrus.WithField("url", rawURL).Info("Rejected unparseable URL")
		return models.Video{}, apperrors.InvalidInput(op, nil, "invalid YouTube URL")
	}

	logger := logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": lang,
	})
	logger.Info("Starting fetch")

	metadata, err := s.MetadataFunc(ctx, videoID)
	if err != nil {
		return models.Video{}, apperrors.Upstream(op, err, "failed to fetch video info")
	}

	transcript := s.TranscriptFunc(ctx, videoID, lang)

	result := models.Video{
		VideoURL:     models.WatchURL(videoID),
		Title:        metadata.Title,
		Description:  metadata.Description,
		ThumbnailURL: models.ThumbnailURL(videoID),
		Subtitles:    transcript.DisplayLines(),
	}

	if err := s.store.SaveResult(result); err != nil {
		return models.Video{}, apperrors.Internal(op, err, "failed to save result")
	}

	// History is supplementary; a failure here never fails the fetch.
	if db.DB != nil {
		record := db.Fetch{
			VideoID:       videoID,
			VideoURL:      result.VideoURL,
			Title:         result.Title,
			Language:      lang,
			SubtitleLines: len(result.Subtitles),
		}
		if err := db.RecordFetch(ctx, record); err != nil {
			logger.WithError(err).Warn("Failed to record fetch history")
		}
	}

	logger.WithField("subtitle_lines", len(result.Subtitles)).Info("Fetch completed")
	return result, nil
}

// LastResult returns the most recently persisted result.
func (s *Service) LastResult() (models.Video, error) {
	const op = "VideoService.LastResult"

	result, err := s.store.LoadResult()
	if err != nil {
		if err == store.ErrNoResult {
			return models.Video{}, apperrors.NotFound(op, err, "no video has been fetched yet")
		}
		return models.Video{}, apperrors.Internal(op, err, "failed to load result")
	}
	return result, nil
}
