package project

import "context"

type sessionKey struct{}

// WithSession returns a context whose calls default to project name.
// The host sets it once per session; it is read-only afterwards.
func WithSession(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, sessionKey{}, name)
}

// Session returns the session project of ctx, or "" when none is set.
func Session(ctx context.Context) string {
	name, _ := ctx.Value(sessionKey{}).(string)
	return name
}
