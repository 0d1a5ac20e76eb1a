package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type TranscriptStatus int

const (
	TranscriptOK TranscriptStatus = iota
	// TranscriptDisabled means the video has captions turned off entirely.
	TranscriptDisabled
	// TranscriptNotFound means captions exist but none match the requested
	// language.
	TranscriptNotFound
	// TranscriptError covers every other provider failure; Err carries the
	// detail.
	TranscriptError
)

// TranscriptResult is the tagged outcome of a transcript fetch. Transcript
// absence is a normal outcome for many videos, so all failure modes are
// values here, never errors at the pipeline boundary.
type TranscriptResult struct {
	Status   TranscriptStatus
	Lines    []string
	Language string // requested language, empty for default mode
	Err      error
}

const (
	msgDisabled        = "Subtitles are disabled for this video."
	msgNotFoundDefault = "No subtitles were found for this video."
	msgNotFoundLang    = "No subtitles in language %q were found for this video."
	msgFetchError      = "Error fetching subtitles: %v"
)

// DisplayLines maps the result to the lines shown to the user: the transcript
// segments on success, or a single placeholder line explaining the absence.
func (r TranscriptResult) DisplayLines() []string {
	switch r.Status {
	case TranscriptOK:
		return r.Lines
	case TranscriptDisabled:
		return []string{msgDisabled}
	case TranscriptNotFound:
		if r.Language != "" {
			return []string{fmt.Sprintf(msgNotFoundLang, r.Language)}
		}
		return []string{msgNotFoundDefault}
	default:
		return []string{fmt.Sprintf(msgFetchError, r.Err)}
	}
}

// FetchTranscript resolves the transcript lines for a video. An empty lang
// selects the provider's default track; a non-empty lang pins exactly that
// language. Segments keep the provider's chronological order; timing is
// discarded.
func (c *Client) FetchTranscript(ctx context.Context, videoID, lang string) TranscriptResult {
	result := TranscriptResult{Language: lang}

	resp, err := c.player(ctx, videoID)
	if err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("Failed to fetch caption tracks")
		result.Status = TranscriptError
		result.Err = err
		return result
	}

	if resp.Captions == nil {
		result.Status = TranscriptDisabled
		return result
	}
	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		result.Status = TranscriptDisabled
		return result
	}

	track, ok := pickTrack(tracks, lang)
	if !ok {
		result.Status = TranscriptNotFound
		return result
	}

	lines, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"video_id": videoID,
			"language": track.LanguageCode,
		}).Error("Failed to fetch caption track")
		result.Status = TranscriptError
		result.Err = err
		return result
	}
	if len(lines) == 0 {
		result.Status = TranscriptNotFound
		return result
	}

	logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": track.LanguageCode,
		"lines":    len(lines),
	}).Info("Fetched transcript")

	result.Status = TranscriptOK
	result.Lines = lines
	return result
}

// pickTrack selects a caption track. With a pinned language only that
// language qualifies, manual tracks before auto-generated ("asr") ones. In
// default mode the first manual track wins, else the first track.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, bool) {
	if lang != "" {
		for _, t := range tracks {
			if matchesLanguage(t.LanguageCode, lang) && t.Kind != "asr" {
				return t, true
			}
		}
		for _, t := range tracks {
			if matchesLanguage(t.LanguageCode, lang) {
				return t, true
			}
		}
		return captionTrack{}, false
	}

	for _, t := range tracks {
		if t.Kind != "asr" {
			return t, true
		}
	}
	return tracks[0], true
}

func matchesLanguage(code, lang string) bool {
	return code == lang || strings.HasPrefix(code, lang+"-")
}

// fetchTimedText fetches and parses a timedtext XML caption URL into one
// string per caption line.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ytAndroidUA)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionsBody))
	if err != nil {
		return nil, err
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	lines := make([]string, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			lines = append(lines, text)
		}
	}
	return lines, nil
}
