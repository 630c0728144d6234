package transporters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"astrocards/pkg/log"
)

// Console writes human-readable single-line entries, for the CLI where
// stdout carries the command's output.
//
//	15:04:05 WARN  astro fetch failed location=Oslo error="..."
type Console struct {
	writer io.Writer
}

// NewConsole creates a console transporter writing to os.Stderr.
func NewConsole() *Console {
	return &Console{writer: os.Stderr}
}

// NewConsoleWithWriter creates a console transporter writing to w.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

// Name returns the transporter identifier.
func (c *Console) Name() string {
	return "console"
}

// Write formats the entry as time, padded level, message and sorted key=value pairs.
func (c *Console) Write(entry log.Entry) error {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("15:04:05"))
	fmt.Fprintf(&b, " %-5s %s", entry.Level, entry.Message)

	if entry.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", entry.RequestID)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, formatValue(entry.Fields[k]))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(c.writer, b.String())
	return err
}

// Close is a no-op.
func (c *Console) Close() error {
	return nil
}

func formatValue(v any) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\"=") || s == "" {
		return fmt.Sprintf("%q", s)
	}
	return s
}
