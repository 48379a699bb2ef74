package identity

import (
	"slices"

	"github.com/gatekit/gatekit/pkg/pathset"
	"github.com/gatekit/gatekit/svc/auth"
)

// Snapshot is a point-in-time view of the authorization state: who is signed
// in, which roles they hold, and the union of paths those roles grant.
// A snapshot is a value; once returned it never changes.
//
// The zero value is the signed-out state: no user, no roles, and an empty
// path set that denies everything.
type Snapshot struct {
	User    *auth.User
	Roles   []string
	Paths   pathset.Set
	Loading bool
}

// Authenticated reports whether a user is signed in.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// HasRole reports whether the current user holds the given role.
func (s Snapshot) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}

// Can reports whether the current path set grants access to path.
// An empty set denies everything, so a signed-out or failed-resolution
// snapshot always answers false.
func (s Snapshot) Can(path string) bool {
	return s.Paths.Has(path)
}

// CanAny reports whether the current path set grants at least one of the paths.
func (s Snapshot) CanAny(paths ...string) bool {
	return s.Paths.HasAny(paths...)
}

// CanAll reports whether the current path set grants every one of the paths.
func (s Snapshot) CanAll(paths ...string) bool {
	return s.Paths.HasAll(paths...)
}
