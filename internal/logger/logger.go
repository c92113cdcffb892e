// Package logger configures the process-wide logrus instance. Production
// runs emit JSON keyed for the log pipeline; everything else gets a
// human-readable text format.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger struct{ *logrus.Logger }

// New builds the logger from the ENV and LOG_LEVEL variables. An unknown
// level falls back to logrus' default (info).
func New() *Logger {
	log := logrus.New()

	if os.Getenv("ENV") == "production" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "@timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}

	log.SetOutput(os.Stdout)
	return &Logger{Logger: log}
}

// WithService returns the base entry the service derives all request
// loggers from.
func (l *Logger) WithService(name string) *logrus.Entry {
	return l.WithField("service", name)
}
