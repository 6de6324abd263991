// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP client
// initialization, access token inspection, and note id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// OperationCtxKey is the key used to store the name of the sync operation
// (login, push, pull, ...) currently running on a context. Loggers and
// metrics read it to label their output.
//
// Example of writing a value to the context:
//
//	ctx = utils.WithOperation(ctx, "push")
var OperationCtxKey = contextKey("operation")

// WithOperation returns a copy of ctx carrying the operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationCtxKey, operation)
}

// GetOperationFromContext retrieves the sync operation name from the context.
//
// Returns the operation name and an ok flag:
//   - ok == true  — value is found and is a non-empty string
//   - ok == false — value is missing, empty or has an unexpected type
func GetOperationFromContext(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(OperationCtxKey).(string)
	return op, ok && op != ""
}
