// Package transporters contains log.Transporter implementations.
package transporters

import (
	"encoding/json"
	"io"
	"os"

	"astrocards/pkg/log"
)

// Stdout writes line-delimited JSON entries to stdout (or any io.Writer).
// Used by the servers.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a transporter writing to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

// NewStdoutWithWriter creates a transporter writing to w.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{writer: w}
}

// Name returns the transporter identifier.
func (s *Stdout) Name() string {
	return "stdout"
}

// Write marshals the entry to one JSON line.
func (s *Stdout) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = s.writer.Write(append(data, '\n'))
	return err
}

// Close is a no-op for stdout.
func (s *Stdout) Close() error {
	return nil
}
