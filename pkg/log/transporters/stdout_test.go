package transporters

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"astrocards/pkg/log"
)

func TestStdout_ImplementsTransporter(t *testing.T) {
	var _ log.Transporter = &Stdout{}
}

func TestStdout_Write_OutputsJSONLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdoutWithWriter(&buf)

	err := s.Write(log.Entry{
		Timestamp: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		Level:     log.Info,
		Message:   "request completed",
		Fields:    map[string]any{"path": "/astro"},
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	output := buf.String()
	if !strings.HasSuffix(output, "\n") {
		t.Error("output should end with newline")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, output)
	}
	if result["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", result["level"])
	}
	if result["path"] != "/astro" {
		t.Errorf("path = %v, want /astro", result["path"])
	}
}

func TestStdout_Write_MultipleEntries_EachOnNewLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdoutWithWriter(&buf)

	s.Write(log.Entry{Timestamp: time.Now(), Level: log.Info, Message: "first"})
	s.Write(log.Entry{Timestamp: time.Now(), Level: log.Error, Message: "second"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}
