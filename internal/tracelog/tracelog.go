// Package tracelog records per-command, per-container debug traces,
// distinct from pkg/console's user-facing status output. It exists so a
// caller can turn on verbose wire-level tracing (every shell command, every
// build log line) without drowning the console in noise.
package tracelog

import (
	log "github.com/sirupsen/logrus"
)

// Logger tags every line with a container ID (or another short trace tag,
// e.g. a build ID before a container exists) so concurrent executors'
// traces can be told apart in a shared log stream.
type Logger struct {
	entry *log.Entry
}

// New returns a Logger writing through logrus's standard logger.
func New() *Logger {
	return &Logger{entry: log.NewEntry(log.StandardLogger())}
}

func (l *Logger) Debug(tag, msg string, args ...interface{}) {
	if l == nil {
		return
	}
	l.entry.WithField("tag", tag).Debugf(msg, args...)
}

func (l *Logger) Info(tag, msg string, args ...interface{}) {
	if l == nil {
		return
	}
	l.entry.WithField("tag", tag).Infof(msg, args...)
}

func (l *Logger) Error(tag string, err error) {
	if l == nil {
		return
	}
	l.entry.WithField("tag", tag).Error(err)
}
