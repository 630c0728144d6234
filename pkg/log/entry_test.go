package log

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func marshalToMap(t *testing.T, entry Entry) map[string]any {
	t.Helper()
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	return result
}

func TestEntry_MarshalJSON_ContainsAllFields(t *testing.T) {
	entry := Entry{
		Timestamp: time.Date(2026, 10, 16, 21, 30, 0, 0, time.UTC),
		Level:     Info,
		Caller:    "client.go:42",
		RequestID: "req-123",
		Message:   "astro fetched",
		Fields:    map[string]any{"location": "Seattle", "status": 200},
	}

	result := marshalToMap(t, entry)

	if result["timestamp"] != "2026-10-16T21:30:00Z" {
		t.Errorf("timestamp = %v, want %v", result["timestamp"], "2026-10-16T21:30:00Z")
	}
	if result["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", result["level"])
	}
	if result["caller"] != "client.go:42" {
		t.Errorf("caller = %v, want client.go:42", result["caller"])
	}
	if result["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", result["request_id"])
	}
	if result["msg"] != "astro fetched" {
		t.Errorf("msg = %v, want 'astro fetched'", result["msg"])
	}
	if result["location"] != "Seattle" {
		t.Errorf("location = %v, want Seattle", result["location"])
	}
	if result["status"] != float64(200) {
		t.Errorf("status = %v, want 200", result["status"])
	}
}

func TestEntry_MarshalJSON_OmitsEmptyOptionalFields(t *testing.T) {
	result := marshalToMap(t, Entry{Timestamp: time.Now(), Level: Error, Message: "boom"})

	if _, exists := result["request_id"]; exists {
		t.Error("request_id should be omitted when empty")
	}
	if _, exists := result["caller"]; exists {
		t.Error("caller should be omitted when empty")
	}
}

func TestEntry_MarshalJSON_FieldsCannotOverrideReservedKeys(t *testing.T) {
	entry := Entry{
		Timestamp: time.Now(),
		Level:     Warn,
		Message:   "real message",
		Fields:    map[string]any{"msg": "spoofed", "level": "DEBUG"},
	}

	result := marshalToMap(t, entry)

	if result["msg"] != "real message" {
		t.Errorf("msg = %v, want 'real message'", result["msg"])
	}
	if result["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", result["level"])
	}
}

func TestEntry_MarshalJSON_ErrorValuesAreStrings(t *testing.T) {
	entry := *NewEntry(Error, "fetch failed").With("error", errors.New("connection refused"))

	result := marshalToMap(t, entry)

	if result["error"] != "connection refused" {
		t.Errorf("error = %v, want 'connection refused'", result["error"])
	}
}

func TestEntry_With_OddNumberOfArgs_IgnoresLastKey(t *testing.T) {
	entry := NewEntry(Info, "test").With("key1", "value1", "orphan")

	if entry.Fields["key1"] != "value1" {
		t.Errorf("Fields[key1] = %v, want value1", entry.Fields["key1"])
	}
	if _, exists := entry.Fields["orphan"]; exists {
		t.Error("orphan key should not exist")
	}
}

func TestEntry_With_NilFields_Initializes(t *testing.T) {
	entry := &Entry{Level: Info}
	entry.With("k", "v")

	if entry.Fields["k"] != "v" {
		t.Errorf("Fields[k] = %v, want v", entry.Fields["k"])
	}
}
