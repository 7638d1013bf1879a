// Package logrus adapts a *logrus.Entry to cache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/IvanBrykalov/ttlcache/cache"
)

var _ cache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every cache event with component=ttlcache.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "ttlcache")}
}

func (l LogrusLogger) Debug(msg string, f cache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f cache.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f cache.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f cache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
