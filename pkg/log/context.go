package log

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	fieldsKey
)

// WithRequestID returns a context carrying the request ID, which is stamped on
// every entry logged through the *Ctx functions.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context.
// Returns empty string if not found or context is nil.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithFields returns a context carrying structured fields merged over the
// ones already present (session_id, location, ...).
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	existing := FieldsFromContext(ctx)
	fields := make(map[string]any, len(existing)+len(keysAndValues)/2)
	for k, v := range existing {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)

	return context.WithValue(ctx, fieldsKey, fields)
}

// FieldsFromContext extracts structured fields from context.
// Returns nil if no fields are set.
func FieldsFromContext(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	return fields
}
