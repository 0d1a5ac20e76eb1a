package models

// DefaultPrompts are the built-in prompt templates written to the settings
// file on first run. Each is combined with the fetched subtitles when sending
// a generation request.
var DefaultPrompts = []string{
	"List the key terms of this lesson video first so a viewer can preview it, then summarize its content and main points.",
	"Clean up the subtitles, join them with line breaks, and display them again.",
	"Summarize this video for teachers, including points to keep in mind when using it in class.",
	"Summarize the content of this video.",
}

// Settings is the persisted settings record.
type Settings struct {
	Prompts []string `json:"prompts"`
}
