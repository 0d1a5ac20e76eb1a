package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yt-gist/config"
	"yt-gist/db"
	"yt-gist/gemini"
	"yt-gist/handlers"
	"yt-gist/logger"
	"yt-gist/middleware"
	"yt-gist/store"
	"yt-gist/video"
	"yt-gist/youtube"

	"github.com/sirupsen/logrus"
)

func serveIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "./static/index.html")
}

func main() {
	cfg := config.LoadConfig()

	if err := config.ValidateConfig(cfg); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	if err := logger.Init(cfg.LogDir); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	if err := db.InitializeDB(cfg.DBPath); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.DB.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close database")
		}
	}()

	fileStore, err := store.New(cfg.DataDir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize store")
	}

	ytClient := youtube.NewClient(cfg.FetchTimeout)
	geminiClient := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GenerateTimeout,
	})
	videoService := video.NewService(ytClient, fileStore)

	handlers.InitHandlers(cfg, videoService, geminiClient, fileStore)

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc("/api/fetch", handlers.FetchHandler)
	mux.HandleFunc("/api/result", handlers.ResultHandler)
	mux.HandleFunc("/api/generate", handlers.GenerateHandler)
	mux.HandleFunc("/api/prompts", handlers.PromptsHandler)
	mux.HandleFunc("/api/key", handlers.APIKeyHandler)
	mux.HandleFunc("/api/history", handlers.HistoryHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.LoggingMiddleware(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logrus.WithField("port", cfg.ServerPort).Info("Listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Could not listen")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop

	logrus.Info("Shutting down the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server shutdown failed")
	}
}
