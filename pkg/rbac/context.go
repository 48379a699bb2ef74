package rbac

import "context"

// roleCtxKey is the context key for storing the active role.
type roleCtxKey struct{}

// WithRole stores the user's role in the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext retrieves the user's role from the context.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}
