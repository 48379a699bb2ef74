package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/svc/identity"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	store := identity.NewMemoryRoleStore()
	store.AssignRole(userID, "viewer")
	store.AssignRole(userID, "editor")
	store.SetRolePaths("viewer", "/posts")
	store.SetRolePaths("editor", "/posts/*", "/posts") // overlap is deduplicated

	res, err := identity.NewResolver(store).Resolve(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, []string{"viewer", "editor"}, res.Roles)
	assert.Equal(t, []string{"/posts", "/posts/*"}, res.Paths.List())
	assert.True(t, res.Paths.Has("/posts/42"))
}

func TestResolver_NoRoles(t *testing.T) {
	t.Parallel()

	res, err := identity.NewResolver(identity.NewMemoryRoleStore()).Resolve(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Empty(t, res.Roles)
	assert.True(t, res.Paths.IsEmpty())
	assert.False(t, res.Paths.Has("/posts"))
}

func TestResolver_StoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("store unreachable")
	_, err := identity.NewResolver(&failingStore{err: storeErr}).Resolve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeErr)
}
