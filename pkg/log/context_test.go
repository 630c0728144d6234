package log

import (
	"context"
	"testing"
)

func TestWithRequestID_RoundTrips(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	if id := RequestIDFromContext(ctx); id != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want %q", id, "req-123")
	}
}

func TestRequestIDFromContext_Missing_ReturnsEmpty(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", id)
	}
	if id := RequestIDFromContext(nil); id != "" {
		t.Errorf("RequestIDFromContext(nil) = %q, want empty", id)
	}
}

func TestWithFields_MergesWithExisting(t *testing.T) {
	ctx := WithFields(context.Background(), "session_id", "s-1", "location", "Oslo")
	ctx = WithFields(ctx, "location", "Bergen")

	fields := FieldsFromContext(ctx)
	if fields["session_id"] != "s-1" {
		t.Errorf("fields[session_id] = %v, want %q", fields["session_id"], "s-1")
	}
	if fields["location"] != "Bergen" {
		t.Errorf("fields[location] = %v, want %q", fields["location"], "Bergen")
	}
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	parent := WithFields(context.Background(), "a", 1)
	_ = WithFields(parent, "b", 2)

	if _, ok := FieldsFromContext(parent)["b"]; ok {
		t.Error("child fields leaked into parent context")
	}
}
