package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"licitaciones-backend/internal/config"
)

// Init configures the global zerolog logger from cfg.
func Init(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(os.Stdout, cfg.LogFormat)
}

// New builds a logger writing to out. Format "json" emits one JSON object per
// line; anything else uses the human-friendly console writer.
func New(out io.Writer, format string) zerolog.Logger {
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).With().Timestamp().Caller().Logger()
}
