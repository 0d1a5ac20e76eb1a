package models

const (
	// Placeholders used when the video info provider omits a field.
	DefaultTitle       = "no title"
	DefaultDescription = "no description"
)

// Video is the result of one fetch: metadata plus subtitle lines.
// Subtitles either hold the transcript segments in chronological order or a
// single human-readable line explaining why no transcript is available.
type Video struct {
	VideoURL     string   `json:"video_url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Subtitles    []string `json:"subtitles"`
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL builds the maxres thumbnail URL for a video ID. The image is
// not verified to exist; display falls back to a default image on its own.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}
