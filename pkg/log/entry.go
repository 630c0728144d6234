package log

import (
	"encoding/json"
	"time"
)

// Entry represents a structured log entry.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	RequestID string
	Message   string
	Fields    map[string]any
}

// NewEntry creates a new log entry with the current timestamp.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With adds alternating key/value pairs to the entry's fields.
func (e *Entry) With(keysAndValues ...any) *Entry {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	mergePairs(e.Fields, keysAndValues)
	return e
}

// reservedKeys are owned by the entry itself; a field with the same name
// is dropped from the JSON output.
var reservedKeys = map[string]bool{
	"timestamp":  true,
	"level":      true,
	"msg":        true,
	"caller":     true,
	"request_id": true,
}

// MarshalJSON flattens Fields into the root object next to the reserved keys.
// Empty caller and request_id are omitted.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+5)

	for k, v := range e.Fields {
		if reservedKeys[k] {
			continue
		}
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		m[k] = v
	}

	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RequestID != "" {
		m["request_id"] = e.RequestID
	}

	return json.Marshal(m)
}
