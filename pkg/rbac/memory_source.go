package rbac

import (
	"context"
	"slices"
	"sync"
)

// inMemRoleSource is a RoleSource backed by a map held in memory.
// It is thread-safe and keeps defensive copies of the input.
type inMemRoleSource struct {
	mu    sync.RWMutex
	roles map[string]Role
}

// NewInMemRoleSource creates an in-memory role source from a map of roles.
// The input is deep-copied so later mutations by the caller have no effect.
func NewInMemRoleSource(roles map[string]Role) RoleSource {
	rolesCopy := make(map[string]Role, len(roles))
	for name, role := range roles {
		rolesCopy[name] = Role{
			Paths:    slices.Clone(role.Paths),
			Inherits: slices.Clone(role.Inherits),
		}
	}

	return &inMemRoleSource{roles: rolesCopy}
}

// Load returns the map of roles.
// The returned map is safe to read but must not be modified.
func (s *inMemRoleSource) Load(ctx context.Context) (map[string]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles, nil
}
