package rbac

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gatekit/gatekit/pkg/pathset"
)

// Authorizer answers "can this role reach this path" questions.
// It supports role inheritance and wildcard patterns.
type Authorizer interface {
	// Can checks if a role grants the given path (direct or inherited).
	Can(roleName, path string) error

	// CanAny checks if a role grants any of the provided paths.
	CanAny(roleName string, paths ...string) error

	// CanAll checks if a role grants all of the provided paths.
	CanAll(roleName string, paths ...string) error

	// CanFromContext checks if the role stored in the context grants the given path.
	CanFromContext(ctx context.Context, path string) error

	// PathsFor returns the effective path set of a role, including inherited paths.
	PathsFor(roleName string) (pathset.Set, error)

	// VerifyRole returns an error if the given role does not exist.
	VerifyRole(role string) error

	// Roles returns all role names sorted by inheritance (base roles first).
	Roles() []string
}

// RoleSource defines the interface for providing role definitions.
type RoleSource interface {
	// Load returns a map of all roles keyed by role name.
	Load(ctx context.Context) (map[string]Role, error)
}

type authorizer struct {
	// rolePaths holds the effective path set (direct and inherited) per role.
	// Treated as immutable after construction for thread safety.
	rolePaths map[string]pathset.Set
	// sortedRoles lists all roles sorted by inheritance (base roles first).
	sortedRoles []string
}

// NewAuthorizer creates an Authorizer that loads roles from the provided source.
// It precomputes effective path sets (including inherited ones) so runtime
// checks never touch the source again.
func NewAuthorizer(ctx context.Context, source RoleSource) (Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if roles == nil {
		roles = make(map[string]Role)
	}

	if err := validateInheritance(roles); err != nil {
		return nil, err
	}

	rolePaths := make(map[string]pathset.Set, len(roles))
	for name := range roles {
		all := collectPaths(name, roles, make(map[string]bool), 0)
		rolePaths[name] = pathset.New(all...)
	}

	return &authorizer{
		rolePaths:   rolePaths,
		sortedRoles: sortByInheritance(roles),
	}, nil
}

func (a *authorizer) Can(roleName, path string) error {
	paths, exists := a.rolePaths[roleName]
	if !exists {
		return ErrInvalidRole
	}
	if !paths.Has(path) {
		return ErrAccessDenied
	}
	return nil
}

func (a *authorizer) CanAny(roleName string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	granted, exists := a.rolePaths[roleName]
	if !exists {
		return ErrInvalidRole
	}
	if !granted.HasAny(paths...) {
		return ErrAccessDenied
	}
	return nil
}

func (a *authorizer) CanAll(roleName string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	granted, exists := a.rolePaths[roleName]
	if !exists {
		return ErrInvalidRole
	}
	if !granted.HasAll(paths...) {
		return ErrAccessDenied
	}
	return nil
}

func (a *authorizer) CanFromContext(ctx context.Context, path string) error {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrAccessDenied)
	}
	return a.Can(role, path)
}

func (a *authorizer) PathsFor(roleName string) (pathset.Set, error) {
	paths, exists := a.rolePaths[roleName]
	if !exists {
		return pathset.Set{}, ErrInvalidRole
	}
	return paths, nil
}

func (a *authorizer) VerifyRole(role string) error {
	if _, exists := a.rolePaths[role]; !exists {
		return ErrInvalidRole
	}
	return nil
}

func (a *authorizer) Roles() []string {
	return a.sortedRoles
}

// collectPaths recursively gathers all paths for a role, including inherited ones.
func collectPaths(roleName string, roles map[string]Role, visited map[string]bool, depth int) []string {
	if depth > MaxInheritanceDepth {
		return nil
	}
	if visited[roleName] {
		return nil
	}
	visited[roleName] = true

	role, exists := roles[roleName]
	if !exists {
		return nil
	}

	result := make([]string, len(role.Paths))
	copy(result, role.Paths)

	for _, parent := range role.Inherits {
		result = append(result, collectPaths(parent, roles, visited, depth+1)...)
	}

	return result
}

// sortByInheritance returns role names ordered by inheritance depth, base roles first.
func sortByInheritance(roles map[string]Role) []string {
	depths := make(map[string]int)
	visited := make(map[string]bool)

	for name := range roles {
		if !visited[name] {
			roleDepth(name, roles, depths, visited, make(map[string]bool))
		}
	}

	result := make([]string, 0, len(roles))
	for name := range roles {
		result = append(result, name)
	}

	slices.SortFunc(result, func(a, b string) int {
		if d := depths[a] - depths[b]; d != 0 {
			return d
		}
		// Stable ordering among roles of equal depth.
		if a < b {
			return -1
		}
		return 1
	})

	return result
}

// roleDepth computes the inheritance depth of a role using DFS.
func roleDepth(roleName string, roles map[string]Role, depths map[string]int, visited, inProcess map[string]bool) int {
	if visited[roleName] {
		return depths[roleName]
	}
	if inProcess[roleName] {
		return 0 // circular dependency, reported by validateInheritance
	}
	inProcess[roleName] = true
	defer func() { inProcess[roleName] = false }()

	role, exists := roles[roleName]
	if !exists || len(role.Inherits) == 0 {
		depths[roleName] = 0
		visited[roleName] = true
		return 0
	}

	maxDepth := 0
	for _, parent := range role.Inherits {
		if d := roleDepth(parent, roles, depths, visited, inProcess) + 1; d > maxDepth {
			maxDepth = d
		}
	}

	depths[roleName] = maxDepth
	visited[roleName] = true
	return maxDepth
}

// validateInheritance rejects circular or excessively deep role graphs.
func validateInheritance(roles map[string]Role) error {
	for name := range roles {
		if err := checkCycle(name, roles, []string{name}); err != nil {
			return err
		}
	}

	depths := make(map[string]int)
	visited := make(map[string]bool)
	for name := range roles {
		if !visited[name] {
			if d := roleDepth(name, roles, depths, visited, make(map[string]bool)); d > MaxInheritanceDepth {
				return errors.Join(ErrCircularInheritance,
					fmt.Errorf("inheritance depth exceeds maximum of %d", MaxInheritanceDepth))
			}
		}
	}

	return nil
}

// checkCycle performs DFS to detect circular role inheritance.
func checkCycle(roleName string, roles map[string]Role, path []string) error {
	role, exists := roles[roleName]
	if !exists {
		return nil
	}

	for _, parent := range role.Inherits {
		if slices.Contains(path, parent) {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("circular inheritance detected: %s -> %s", roleName, parent))
		}
		if err := checkCycle(parent, roles, append(path, parent)); err != nil {
			return err
		}
	}

	return nil
}
