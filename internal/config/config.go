package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort          = 3000
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultMaxBodyBytes  = 10_000_000
)

type Config struct {
	// Server
	Port      int
	Env       string
	PublicDir string

	// Request limits
	MaxBodyBytes int64

	// OpenRouter
	APIKey          string
	OpenRouterURL   string
	AppReferer      string
	AppTitle        string
	UpstreamTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the process environment. Call
// LoadEnvFile first to overlay a .env file.
func Load() *Config {
	return &Config{
		Port:            getEnvAsIntOrDefault("PORT", DefaultPort),
		Env:             getEnvOrDefault("ENV", "development"),
		PublicDir:       getEnvOrDefault("PUBLIC_DIR", "public"),
		MaxBodyBytes:    DefaultMaxBodyBytes,
		APIKey:          strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterURL:   getEnvOrDefault("OPENROUTER_URL", DefaultOpenRouterURL),
		AppReferer:      getEnvOrDefault("APP_REFERER", "http://localhost"),
		AppTitle:        getEnvOrDefault("APP_TITLE", "Analizador de licitaciones"),
		UpstreamTimeout: time.Duration(getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 120)) * time.Second,
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

// HasCredential reports whether an OpenRouter key was configured.
func (c *Config) HasCredential() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
