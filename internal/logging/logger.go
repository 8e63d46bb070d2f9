// Package logging defines the small structured-logging surface the client
// components are written against, plus a slog-backed implementation.
package logging

import "context"

// Logger is a context-aware structured logger. Variadic args are
// key–value pairs:
//
//	log.Info(ctx, "session started", "identity", email)
type Logger interface {
	// Debug logs fine-grained diagnostics.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
