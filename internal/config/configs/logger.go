package configs

import (
	"io"
	"log/slog"
	"strings"
)

// Logger configures the structured logger.
type Logger struct {
	// Level is one of debug, info, warn or error. Anything else means info.
	Level string `env:"LEVEL" envDefault:"info"`
	// Format is text or json. Anything else means text.
	Format string `env:"FORMAT" envDefault:"text"`
	// AddSource attaches file:line to every record.
	AddSource bool `env:"ADD_SOURCE" envDefault:"false"`
}

func (c Logger) level() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. Every record carries the deployment
// environment when env is not empty.
func (c Logger) New(w io.Writer, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level(), AddSource: c.AddSource}
	var handler slog.Handler
	if strings.EqualFold(c.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	if env != "" {
		logger = logger.With(slog.String("env", env))
	}
	return logger
}
