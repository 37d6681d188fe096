// Package context carries per-request values that cross layer boundaries.
// Only the request id lives here; principals stay in the transport layer.
package context

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID attaches the request id so logs and error payloads emitted
// deeper in the stack can reference it.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the attached request id, or "" when none was set.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
