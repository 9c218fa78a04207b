// Package logging wraps logrus behind a narrow internal type so that
// cloudpulse's own packages never import logrus directly and the
// formatter/level policy lives in one place.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is cloudpulse's structured logger. One instance is constructed in
// main and passed explicitly to the orchestrator, sampler, and HTTP
// service; there is no package-level logging global.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger. env selects the formatter: "production" gets JSON
// (for log-aggregator ingestion), anything else gets a human-readable
// text formatter with full timestamps.
func New(env string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)

	if strings.EqualFold(env, "production") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{Logger: l}
}

// WithField returns a log entry carrying one structured field.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithFields returns a log entry carrying several structured fields.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.Logger.WithFields(fields)
}
