package identity

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/pkg/rbac"
)

// RoleStore answers the two lookups authorization resolution is made of:
// which roles a user holds, and which paths a set of roles grants.
//
// Implementations must treat unknown users and unknown roles as granting
// nothing rather than as errors; errors are reserved for the backing store
// being unreachable.
type RoleStore interface {
	// UserRoles returns the role names assigned to the given user.
	// An unknown user yields an empty slice, not an error.
	UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error)

	// PathsForRoles returns the union of paths granted by the given roles.
	// Unknown roles contribute nothing.
	PathsForRoles(ctx context.Context, roles []string) ([]string, error)
}

// MemoryRoleStore is an in-memory RoleStore for tests and single-node setups.
type MemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[uuid.UUID][]string
	paths map[string][]string
}

// NewMemoryRoleStore creates an empty in-memory role store.
func NewMemoryRoleStore() *MemoryRoleStore {
	return &MemoryRoleStore{
		roles: make(map[uuid.UUID][]string),
		paths: make(map[string][]string),
	}
}

// AssignRole adds a role to a user's assignments. Assigning an already held
// role is a no-op.
func (s *MemoryRoleStore) AssignRole(userID uuid.UUID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.roles[userID], role) {
		return
	}
	s.roles[userID] = append(s.roles[userID], role)
}

// RevokeRole removes a role from a user's assignments.
func (s *MemoryRoleStore) RevokeRole(userID uuid.UUID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[userID] = slices.DeleteFunc(s.roles[userID], func(r string) bool {
		return r == role
	})
}

// SetRolePaths replaces the paths granted by a role.
func (s *MemoryRoleStore) SetRolePaths(role string, paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[role] = slices.Clone(paths)
}

func (s *MemoryRoleStore) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.roles[userID]), nil
}

func (s *MemoryRoleStore) PathsForRoles(ctx context.Context, roles []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []string
	for _, role := range roles {
		result = append(result, s.paths[role]...)
	}
	return result, nil
}

// UserRoleSource provides only the user-to-roles hop.
// It lets the role-to-paths hop come from elsewhere, such as an Authorizer
// built from static role definitions.
type UserRoleSource interface {
	UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// AuthorizerStore combines a user-to-roles source with role definitions held
// by an rbac.Authorizer: assignments live in a database while the roles
// themselves ship as configuration.
type AuthorizerStore struct {
	assignments UserRoleSource
	authorizer  rbac.Authorizer
}

// NewAuthorizerStore creates a RoleStore resolving paths through the given
// authorizer.
func NewAuthorizerStore(assignments UserRoleSource, authorizer rbac.Authorizer) *AuthorizerStore {
	return &AuthorizerStore{assignments: assignments, authorizer: authorizer}
}

func (s *AuthorizerStore) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.assignments.UserRoles(ctx, userID)
}

// PathsForRoles resolves paths through the authorizer's precomputed role
// definitions. Roles unknown to the authorizer grant nothing.
func (s *AuthorizerStore) PathsForRoles(ctx context.Context, roles []string) ([]string, error) {
	var result []string
	for _, role := range roles {
		paths, err := s.authorizer.PathsFor(role)
		if err != nil {
			if errors.Is(err, rbac.ErrInvalidRole) {
				continue
			}
			return nil, fmt.Errorf("resolve paths for role %q: %w", role, err)
		}
		result = append(result, paths.List()...)
	}
	return result, nil
}

var (
	_ RoleStore = (*MemoryRoleStore)(nil)
	_ RoleStore = (*AuthorizerStore)(nil)
)
