package identity_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/svc/identity"
)

// countingStore counts how often the inner store is consulted.
type countingStore struct {
	inner      identity.RoleStore
	roleCalls  atomic.Int64
	pathsCalls atomic.Int64
}

func (s *countingStore) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	s.roleCalls.Add(1)
	return s.inner.UserRoles(ctx, userID)
}

func (s *countingStore) PathsForRoles(ctx context.Context, roles []string) ([]string, error) {
	s.pathsCalls.Add(1)
	return s.inner.PathsForRoles(ctx, roles)
}

func TestCachedStore_UserRoles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	inner := identity.NewMemoryRoleStore()
	inner.AssignRole(userID, "viewer")

	counting := &countingStore{inner: inner}
	cached := identity.NewCachedStore(counting)

	for range 3 {
		roles, err := cached.UserRoles(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"viewer"}, roles)
	}

	assert.Equal(t, int64(1), counting.roleCalls.Load(), "repeated lookups hit the cache")
}

func TestCachedStore_Invalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	inner := identity.NewMemoryRoleStore()
	inner.AssignRole(userID, "viewer")

	counting := &countingStore{inner: inner}
	cached := identity.NewCachedStore(counting)

	_, err := cached.UserRoles(ctx, userID)
	require.NoError(t, err)

	inner.AssignRole(userID, "editor")
	cached.Invalidate(ctx, userID)

	roles, err := cached.UserRoles(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer", "editor"}, roles)
	assert.Equal(t, int64(2), counting.roleCalls.Load())
}

func TestCachedStore_PathsKeyOrderInsensitive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	inner := identity.NewMemoryRoleStore()
	inner.SetRolePaths("viewer", "/posts")
	inner.SetRolePaths("editor", "/posts/*")

	counting := &countingStore{inner: inner}
	cached := identity.NewCachedStore(counting)

	first, err := cached.PathsForRoles(ctx, []string{"viewer", "editor"})
	require.NoError(t, err)

	second, err := cached.PathsForRoles(ctx, []string{"editor", "viewer"})
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
	assert.Equal(t, int64(1), counting.pathsCalls.Load(), "role order must not change the cache key")
}

func TestCachedStore_InvalidateRoles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	inner := identity.NewMemoryRoleStore()
	inner.SetRolePaths("viewer", "/posts")

	counting := &countingStore{inner: inner}
	cached := identity.NewCachedStore(counting)

	_, err := cached.PathsForRoles(ctx, []string{"viewer"})
	require.NoError(t, err)

	inner.SetRolePaths("viewer", "/posts", "/comments")
	cached.InvalidateRoles(ctx)

	paths, err := cached.PathsForRoles(ctx, []string{"viewer"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/posts", "/comments"}, paths)
}

func TestCachedStore_EmptyRoles(t *testing.T) {
	t.Parallel()

	counting := &countingStore{inner: identity.NewMemoryRoleStore()}
	cached := identity.NewCachedStore(counting)

	paths, err := cached.PathsForRoles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Zero(t, counting.pathsCalls.Load())
}

func TestCachedStore_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	failing := &failingStore{err: assert.AnError}
	cached := identity.NewCachedStore(failing)

	_, err := cached.UserRoles(ctx, userID)
	assert.ErrorIs(t, err, assert.AnError)

	_, err = cached.UserRoles(ctx, userID)
	assert.ErrorIs(t, err, assert.AnError, "failures must not populate the cache")
}
