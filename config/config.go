package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// DataDir holds the settings, API key and last-result files plus the
	// fetch history database.
	DataDir string
	DBPath  string
	LogDir  string

	// FetchTimeout bounds one metadata + transcript fetch cycle;
	// GenerateTimeout bounds one generation call. The reference behavior
	// blocked indefinitely, so both are generous.
	FetchTimeout    time.Duration
	GenerateTimeout time.Duration

	RateLimit         int
	RateLimitInterval time.Duration

	GeminiBaseURL string
	GeminiModel   string

	// PreferredLanguage is the subtitle language requested in pinned mode.
	PreferredLanguage string
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:        GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 2*time.Minute),
		IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		DataDir:           GetEnv("DATA_DIR", "./data"),
		DBPath:            GetEnv("DB_PATH", "./data/history.db"),
		LogDir:            GetEnv("LOG_DIR", "./logs"),
		FetchTimeout:      getEnvAsDuration("FETCH_TIMEOUT", 1*time.Minute),
		GenerateTimeout:   getEnvAsDuration("GENERATE_TIMEOUT", 2*time.Minute),
		RateLimit:         getEnvAsInt("RATE_LIMIT", 5),
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 1*time.Second),
		GeminiBaseURL:     GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:       GetEnv("GEMINI_MODEL", "models/gemini-1.5-pro-latest"),
		PreferredLanguage: GetEnv("PREFERRED_LANGUAGE", "ja"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.DataDir == "" {
		return errors.New("data directory is required")
	}
	if cfg.DBPath == "" {
		return errors.New("database path is required")
	}
	if cfg.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be greater than 0")
	}
	if cfg.GenerateTimeout <= 0 {
		return errors.New("generate timeout must be greater than 0")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if cfg.GeminiBaseURL == "" {
		return errors.New("gemini base URL is required")
	}
	if cfg.GeminiModel == "" {
		return errors.New("gemini model is required")
	}
	return nil
}
