// Package tracer provides a lightweight tracing abstraction for the CRM core.
//
// It defines an internal tracer interface that doesn't depend directly on
// OpenTelemetry APIs, so the service layer can emit distributed traces while
// remaining decoupled from the tracing implementation.
//
// Implementations:
//   - NoopTracer: For tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashContact returns a SHA-256 hash of an email or phone for safe trace
// correlation without exposing contact details.
func HashContact(contact string) string {
	if contact == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(contact))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the CRM core.
const (
	SpanResolve     = "crm.resolve"
	SpanSubscribe   = "crm.subscribe"
	SpanRegister    = "crm.register"
	SpanAdminUpsert = "crm.admin_upsert"
)

// Attribute keys used by the CRM core.
const (
	AttrSource      = "source"
	AttrIdentityKey = "identity_key"
	AttrMerged      = "merged"
	AttrClientID    = "client_id"
	AttrEventID     = "event_id"
)
