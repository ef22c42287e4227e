package middleware

import (
	"context"

	"github.com/lumicart/storefront/internal/identity"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxProfile   contextKey = "profile"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func ProfileFromContext(ctx context.Context) (identity.Profile, bool) {
	if ctx == nil {
		return identity.Profile{}, false
	}
	v, ok := ctx.Value(ctxProfile).(identity.Profile)
	return v, ok
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// WithProfile injects the authenticated customer profile into the context.
func WithProfile(ctx context.Context, profile identity.Profile) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxProfile, profile)
}
