// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"
	"strings"
)

// DefaultActor is recorded when a command carries no dispatcher name.
const DefaultActor = "dispatcher"

type actorKey struct{}

// WithActor returns a context naming the dispatcher that issued a command.
// A blank name leaves ctx unchanged.
func WithActor(ctx context.Context, actor string) context.Context {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// Actor returns the dispatcher named in ctx, or DefaultActor.
func Actor(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return DefaultActor
}
