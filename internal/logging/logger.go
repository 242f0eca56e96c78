// Package logging is the client's structured logging surface. Components get
// a Logger through their constructors; New wires it to slog over zerolog.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	log.Warn(ctx, "feed fetch failed, serving cache", "tab", tab, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a Logger that adds args to every record.
	With(args ...any) Logger
}

type nop struct{}

// Discard returns a Logger that drops every record. It backs the "off" level.
func Discard() Logger { return nop{} }

func (nop) Debug(context.Context, string, ...any) {}
func (nop) Info(context.Context, string, ...any)  {}
func (nop) Warn(context.Context, string, ...any)  {}
func (nop) Error(context.Context, string, ...any) {}
func (n nop) With(...any) Logger                  { return n }
