package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "travelnest"

// NewLogger returns the process logger for APP_ENV.
// dev (or development) gets a console writer at debug level, everything else
// JSON at info. Every line carries the service name.
func NewLogger(env string) zerolog.Logger {
	return newLogger(os.Stdout, env)
}

// NewTestLogger writes JSON lines to w regardless of environment.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return newLogger(w, "test")
}

func newLogger(w io.Writer, env string) zerolog.Logger {
	level := zerolog.InfoLevel
	if isDev(env) {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", serviceName).
		Str("env", env).
		Logger()
}

func isDev(env string) bool { return env == "dev" || env == "development" }
