package console

// Severity level for console output, ordered from least to most severe.
// Loosely follows https://github.com/apex/log/blob/master/levels.go.

import (
	"errors"
	"strings"
)

// ErrInvalidLevel is returned when a level string doesn't match a known level.
var ErrInvalidLevel = errors.New("invalid level")

// Level is a console verbosity threshold.
type Level int

const (
	InvalidLevel Level = iota - 1
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelNames = [...]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

var levelStrings = map[string]Level{
	"debug":   DebugLevel,
	"info":    InfoLevel,
	"warn":    WarnLevel,
	"warning": WarnLevel,
	"error":   ErrorLevel,
	"fatal":   FatalLevel,
}

func (l Level) String() string {
	return levelNames[l]
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(s string) (Level, error) {
	l, ok := levelStrings[strings.ToLower(s)]
	if !ok {
		return InvalidLevel, ErrInvalidLevel
	}
	return l, nil
}

// MustParseLevel parses a level name and panics if it isn't recognized.
func MustParseLevel(s string) Level {
	l, err := ParseLevel(s)
	if err != nil {
		panic("console: invalid log level " + s)
	}
	return l
}
