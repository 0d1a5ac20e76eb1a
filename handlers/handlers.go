package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"yt-gist/config"
	"yt-gist/db"
	apperrors "yt-gist/errors"
	"yt-gist/gemini"
	"yt-gist/models"
	"yt-gist/store"
	"yt-gist/utils"
	"yt-gist/video"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	cfg          *config.Config
	rateLimiter  *rate.Limiter
	videoService *video.Service
	geminiClient *gemini.Client
	fileStore    *store.Store
)

func InitHandlers(c *config.Config, svc *video.Service, gc *gemini.Client, st *store.Store) {
	cfg = c
	rateLimiter = rate.NewLimiter(rate.Every(c.RateLimitInterval), c.RateLimit)
	videoService = svc
	geminiClient = gc
	fileStore = st
}

// handleAppError maps classified errors to their HTTP status; anything else
// becomes a 500.
func handleAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		utils.HandleError(w, appErr.Message, appErr.Code)
		return
	}
	utils.HandleError(w, "An error occurred while processing your request. Please try again later.", http.StatusInternalServerError)
}

// FetchHandler runs one fetch cycle. Form fields: url (required), lang
// (optional; empty selects the provider's default subtitle track, "pinned"
// selects the configured preferred language).
func FetchHandler(w http.ResponseWriter, r *http.Request) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Info("Received request")

	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	if !rateLimiter.Allow() {
		utils.HandleError(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	url := r.FormValue("url")
	lang := r.FormValue("lang")
	if lang == "pinned" {
		lang = cfg.PreferredLanguage
	}

	ctx, cancel := context.WithTimeout(r.Context(), cfg.FetchTimeout)
	defer cancel()

	result, err := videoService.Fetch(ctx, url, lang)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Error("Fetch failed")
		handleAppError(w, err)
		return
	}

	writeJSON(w, result)
	logrus.WithField("url", url).Info("Fetch successful")
}

// ResultHandler returns the last persisted fetch result.
func ResultHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	result, err := videoService.LastResult()
	if err != nil {
		handleAppError(w, err)
		return
	}

	writeJSON(w, result)
}

// GenerateHandler sends a stored prompt plus the subtitle text to the
// generation endpoint. Form fields: prompt (index into the stored prompt
// set), text (optional override; defaults to the last result's subtitles).
func GenerateHandler(w http.ResponseWriter, r *http.Request) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Info("Received request")

	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	if !rateLimiter.Allow() {
		utils.HandleError(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	prompts, err := fileStore.LoadPrompts()
	if err != nil {
		logrus.WithError(err).Error("Failed to load prompts")
		utils.HandleError(w, "Failed to load prompts", http.StatusInternalServerError)
		return
	}
	if len(prompts) == 0 {
		utils.HandleError(w, "No prompts are configured", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(r.FormValue("prompt"))
	if err != nil || index < 0 || index >= len(prompts) {
		utils.HandleError(w, "Invalid prompt selection", http.StatusBadRequest)
		return
	}

	text := r.FormValue("text")
	if text == "" {
		result, err := videoService.LastResult()
		if err != nil {
			utils.HandleError(w, "No subtitles available; fetch a video first", http.StatusBadRequest)
			return
		}
		text = utils.JoinLines(result.Subtitles)
	}
	if text == "" {
		utils.HandleError(w, "No subtitles available", http.StatusBadRequest)
		return
	}

	apiKey, err := fileStore.LoadAPIKey()
	if err != nil {
		logrus.WithError(err).Error("Failed to load API key")
		utils.HandleError(w, "Failed to load API key", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cfg.GenerateTimeout)
	defer cancel()

	response, err := geminiClient.Generate(ctx, prompts[index], text, apiKey)
	if err != nil {
		logrus.WithError(err).Error("Generation failed")
		handleAppError(w, err)
		return
	}

	writeJSON(w, struct {
		Response string `json:"response"`
		Model    string `json:"model"`
	}{
		Response: response,
		Model:    geminiClient.Model(),
	})
	logrus.Info("Generation successful")
}

// PromptsHandler loads or replaces the stored prompt set.
func PromptsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		prompts, err := fileStore.LoadPrompts()
		if err != nil {
			logrus.WithError(err).Error("Failed to load prompts")
			utils.HandleError(w, "Failed to load prompts", http.StatusInternalServerError)
			return
		}
		writeJSON(w, models.Settings{Prompts: prompts})

	case http.MethodPost:
		var settings models.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			utils.HandleError(w, "Invalid settings payload", http.StatusBadRequest)
			return
		}
		if err := fileStore.SavePrompts(settings.Prompts); err != nil {
			logrus.WithError(err).Error("Failed to save prompts")
			utils.HandleError(w, "Failed to save prompts", http.StatusInternalServerError)
			return
		}
		logrus.WithField("count", len(settings.Prompts)).Info("Saved prompts")
		writeJSON(w, settings)

	default:
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
	}
}

// APIKeyHandler stores the generation credential. Form field: key.
func APIKeyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	if err := fileStore.SaveAPIKey(r.FormValue("key")); err != nil {
		logrus.WithError(err).Error("Failed to save API key")
		utils.HandleError(w, "Failed to save API key", http.StatusInternalServerError)
		return
	}

	logrus.Info("Saved API key")
	writeJSON(w, map[string]string{"status": "saved"})
}

// HistoryHandler lists recent fetch-history rows.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.FormValue("limit"))

	fetches, err := db.RecentFetches(r.Context(), limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list fetch history")
		utils.HandleError(w, "Failed to list fetch history", http.StatusInternalServerError)
		return
	}
	if fetches == nil {
		fetches = []db.Fetch{}
	}

	writeJSON(w, fetches)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
	}
}
