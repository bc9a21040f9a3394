package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger from LOG_LEVEL/LOG_FORMAT. The level is
// set on the logger itself rather than the global registry so tests can
// build loggers at other levels without interfering. Unparseable levels fall
// back to info; Validate rejects them before this point in normal startup.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
