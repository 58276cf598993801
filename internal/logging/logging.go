// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "OWCTL_LOG_LEVEL"
	EnvLogNoColor = "OWCTL_LOG_NOCOLOR"
)

var initOnce sync.Once

// Init builds the logger for app and installs it as the global logger.
// The ow* tools log to stderr so stdout stays pipeable.
func Init(app string) zerolog.Logger {
	var logger zerolog.Logger
	initOnce.Do(func() {
		zerolog.SetGlobalLevel(levelFromEnv())
	})
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv(EnvLogNoColor) != "",
	}
	logger = zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
