package identity

import "context"

type snapshotContextKey struct{}

// WithSnapshot stores an authorization snapshot in the context.
// The RequireAccess middleware does this for every request it admits.
func WithSnapshot(ctx context.Context, snap Snapshot) context.Context {
	return context.WithValue(ctx, snapshotContextKey{}, snap)
}

// SnapshotFromContext retrieves the authorization snapshot from the context.
// The second return value reports whether one was stored.
func SnapshotFromContext(ctx context.Context) (Snapshot, bool) {
	snap, ok := ctx.Value(snapshotContextKey{}).(Snapshot)
	return snap, ok
}
