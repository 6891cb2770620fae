package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LoggerConfig selects the output format and destination of the logger.
type LoggerConfig struct {
	// "json" or "console"
	Format string
	Output io.Writer
	Debug  bool
}

// InitLogger builds the application logger and installs it as the
// package-level zerolog logger as well.
func InitLogger(config ...LoggerConfig) zerolog.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	out := cfg.Output
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "techguide").
		Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
