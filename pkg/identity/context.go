package identity

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithContext stores the decoded identity result in ctx.
func WithContext(ctx context.Context, r Result) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the identity result stored by Middleware.
// Requests that never passed through Middleware are Anonymous.
func FromContext(ctx context.Context) Result {
	if ctx == nil {
		return anonymous()
	}
	r, ok := ctx.Value(contextKey{}).(Result)
	if !ok {
		return anonymous()
	}
	return r
}

// LoggerExtractor adds user_id to log records of authenticated requests.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		r := FromContext(ctx)
		if !r.IsAuthenticated() {
			return slog.Attr{}, false
		}
		return slog.Int64("user_id", r.ID), true
	}
}
