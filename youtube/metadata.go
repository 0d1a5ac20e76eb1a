package youtube

import (
	"context"
	"fmt"

	"yt-gist/models"

	"github.com/sirupsen/logrus"
)

type Metadata struct {
	Title       string
	Description string
}

// FetchMetadata resolves title and description for a video ID. Fields the
// provider omits fall back to fixed placeholders. Any provider failure is
// terminal for the fetch attempt; callers must not retry.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (Metadata, error) {
	resp, err := c.player(ctx, videoID)
	if err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("Failed to fetch video info")
		return Metadata{}, err
	}

	if resp.VideoDetails == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return Metadata{}, fmt.Errorf("video unavailable: %s", resp.PlayabilityStatus.Reason)
		}
		return Metadata{}, fmt.Errorf("no video details for %s", videoID)
	}

	md := Metadata{
		Title:       resp.VideoDetails.Title,
		Description: resp.VideoDetails.ShortDescription,
	}
	if md.Title == "" {
		md.Title = models.DefaultTitle
	}
	if md.Description == "" {
		md.Description = models.DefaultDescription
	}

	logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"title":    md.Title,
	}).Info("Fetched video info")

	return md, nil
}
