package store

import (
	"encoding/json"
	"os"

	"yt-gist/models"

	"github.com/pkg/errors"
)

// ErrNoResult is returned by LoadResult when no fetch has been persisted yet.
var ErrNoResult = errors.New("no result has been saved")

// SaveResult overwrites the single last-result slot. Only successful fetches
// reach this; failed fetches are never persisted.
func (s *Store) SaveResult(video models.Video) error {
	data, err := json.MarshalIndent(video, "", "    ")
	if err != nil {
		return errors.Wrap(err, "error encoding result")
	}
	if err := os.WriteFile(s.resultFile, data, 0o644); err != nil {
		return errors.Wrap(err, "error writing result file")
	}
	return nil
}

func (s *Store) LoadResult() (models.Video, error) {
	var video models.Video

	data, err := os.ReadFile(s.resultFile)
	if err != nil {
		if os.IsNotExist(err) {
			return video, ErrNoResult
		}
		return video, errors.Wrap(err, "error reading result file")
	}

	if err := json.Unmarshal(data, &video); err != nil {
		return video, errors.Wrap(err, "error parsing result file")
	}
	return video, nil
}
