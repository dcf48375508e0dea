// Package logger provides the structured logging conventions shared across
// the simulation service: a process-wide logrus.Logger plus a set of
// WithX helpers that attach consistent fields to log entries.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Init initializes the structured logger with the given level and
// environment. Safe to call once at process start.
func Init(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("invalid LOG_LEVEL, defaulting to info")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(os.Stdout)
	Logger = log
	return log
}

// Get returns the process-wide logger, initializing a sane default if
// Init was never called (e.g. in unit tests).
func Get() *logrus.Logger {
	if Logger == nil {
		return Init("info", false)
	}
	return Logger
}

// WithService tags a log entry with the owning service name.
func WithService(service string) *logrus.Entry {
	return Get().WithField("service", service)
}

// WithGameContext tags a log entry with the game it concerns.
func WithGameContext(gameID string) *logrus.Entry {
	return Get().WithField("game_id", gameID)
}

// WithPlayContext tags a log entry with game and play-number context,
// the granularity the orchestrator logs at for each simulated play.
func WithPlayContext(gameID string, playNumber int) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"game_id":     gameID,
		"play_number": playNumber,
	})
}
