package log

import (
	"errors"
	"strings"
)

// Level represents the severity of a log entry.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
}

// String returns the string representation of the level.
func (l Level) String() string {
	if l < Debug || l > Error {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ErrInvalidLevel is returned when parsing an unknown level string.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a LOG_LEVEL style string into a Level.
// An empty string is Info; an unknown one is Info plus ErrInvalidLevel.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return Debug, nil
	case "", "INFO":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	default:
		return Info, ErrInvalidLevel
	}
}

// Enables returns true if this level allows logging at the given level.
func (l Level) Enables(target Level) bool {
	return target >= l
}
