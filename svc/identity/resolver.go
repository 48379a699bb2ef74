package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/pkg/pathset"
)

// Resolution is the outcome of resolving a user's authorization state:
// the roles they hold and the union of paths those roles grant.
type Resolution struct {
	Roles []string
	Paths pathset.Set
}

// Resolver derives a user's effective path set from a RoleStore.
// The Manager uses it for the signed-in user; servers can use it directly to
// resolve arbitrary users per request.
type Resolver struct {
	store RoleStore
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store RoleStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve performs the two lookups and unions the results.
// A user with no roles resolves to an empty path set rather than an error.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (Resolution, error) {
	roles, err := r.store.UserRoles(ctx, userID)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve roles for user %s: %w", userID, err)
	}
	if len(roles) == 0 {
		return Resolution{}, nil
	}

	paths, err := r.store.PathsForRoles(ctx, roles)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve paths for roles %v: %w", roles, err)
	}

	return Resolution{
		Roles: roles,
		Paths: pathset.New(paths...),
	}, nil
}
