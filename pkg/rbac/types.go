package rbac

import "github.com/gatekit/gatekit/pkg/pathset"

// MaxInheritanceDepth is the maximum allowed depth of role inheritance
// to keep role graphs shallow and resolution predictable.
const MaxInheritanceDepth = 10

// Role represents a set of accessible resource paths with optional inheritance.
// Roles can inherit paths from other roles, creating a hierarchy.
type Role struct {
	// Paths directly granted to this role. Each entry is a rooted
	// resource path or a wildcard pattern (e.g. "/admin/*").
	Paths []string `yaml:"paths"`

	// Inherits lists role names this role inherits from.
	// All paths from inherited roles are included.
	Inherits []string `yaml:"inherits,omitempty"`
}

// Grants checks if the role grants the given path directly.
// This does not consider inherited roles.
func (r *Role) Grants(path string) bool {
	return pathset.Has(r.Paths, path)
}
