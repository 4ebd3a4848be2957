package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Environment variables configuring the process wide logger.
const (
	EnvLevel  = "MX_LOG_LEVEL"
	EnvFormat = "MX_LOG_FORMAT"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const defaultLevel = logrus.WarnLevel

var (
	lg   *logrus.Logger
	once sync.Once
)

// Logger returns the process wide logger, configured from MX_LOG_LEVEL (default
// warning) and MX_LOG_FORMAT (text or json) on first use.
func Logger() *logrus.Logger {
	once.Do(func() {
		lg = logrus.New()
		lg.SetOutput(os.Stderr)
		lg.SetLevel(defaultLevel)
		if err := configure(lg, os.Getenv(EnvLevel), os.Getenv(EnvFormat)); err != nil {
			lg.SetLevel(defaultLevel)
			lg.WithError(err).Warn("invalid logging environment, using defaults")
		}
	})
	return lg
}

// Configure changes the level and format of the process wide logger. Empty values
// keep the current setting.
func Configure(level, format string) error {
	return configure(Logger(), level, format)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Logger().WithField("component", component)
}

func configure(l *logrus.Logger, level, format string) error {
	if level == "" {
		level = l.GetLevel().String()
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	switch strings.ToLower(format) {
	case "":
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format '%s'", format)
	}

	l.SetLevel(lvl)
	return nil
}
