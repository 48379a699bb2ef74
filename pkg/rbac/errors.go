package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrInvalidRole is returned when a role does not exist.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrAccessDenied is returned when the required paths are not granted.
	ErrAccessDenied = errors.New("rbac.access_denied")

	// ErrRoleNotInContext is returned when no role is found in the context.
	ErrRoleNotInContext = errors.New("rbac.role_not_in_context")

	// ErrCircularInheritance is returned when roles have circular inheritance.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")

	// ErrInvalidRoleFile is returned when a role definition file cannot be parsed.
	ErrInvalidRoleFile = errors.New("rbac.invalid_role_file")
)
