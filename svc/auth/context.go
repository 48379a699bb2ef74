package auth

import (
	"context"
	"log/slog"
)

type userContextKey struct{}

// WithUser stores the authenticated user in the context for downstream access.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the authenticated user from the context.
// Returns nil if no user was previously stored.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}

// LoggerExtractor returns a function that enriches log records with the
// authenticated user's ID when one is present in the context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if user := UserFromContext(ctx); user != nil {
			return slog.String("user_id", user.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
