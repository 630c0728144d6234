package log

// Transporter is a log output destination (stdout JSON, console text, ...).
type Transporter interface {
	// Name returns the identifier used in fallback error messages.
	Name() string

	// Write delivers one entry. Called from the buffer worker only.
	Write(entry Entry) error

	// Close releases resources. Write is not called after Close.
	Close() error
}
