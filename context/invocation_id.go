// Package context provides context utilities for tracing tool invocations
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey int

const (
	// InvocationIDKey is the context key for tool invocation IDs
	InvocationIDKey contextKey = iota
)

// NewInvocationID generates a new unique invocation ID
func NewInvocationID() string {
	return uuid.New().String()
}

// WithInvocationID adds an invocation ID to the context
func WithInvocationID(parent stdctx.Context, invocationID string) stdctx.Context {
	return stdctx.WithValue(parent, InvocationIDKey, invocationID)
}

// InvocationIDFromContext extracts the invocation ID from the context
func InvocationIDFromContext(ctx stdctx.Context) string {
	if invocationID, ok := ctx.Value(InvocationIDKey).(string); ok {
		return invocationID
	}
	return ""
}
