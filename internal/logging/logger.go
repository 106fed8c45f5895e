// Package logging is the structured logger every PageKeeper component takes.
// The only implementation wraps log/slog.
package logging

import "context"

// Logger takes alternating key/value pairs after the message:
//
//	log.Info(ctx, "page resolved", "path", path, "source", source)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record, typically
	// With("module", name).
	With(args ...any) Logger
}
