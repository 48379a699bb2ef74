// Package pathset provides utilities for working with accessible resource
// paths in authorization decisions.
//
// Paths are slash-delimited, rooted strings ("/admin/users") and support
// wildcard patterns: "*" grants everything, "/admin/*" grants every path
// strictly under "/admin/".
//
// The package offers both low-level slice helpers (Has, HasAll, Normalize)
// and the Set type, a normalized collection suitable for holding a user's
// effective access set:
//
//	set := pathset.New("/dashboard", "/admin/*")
//	set.Has("/admin/users") // true
//	set.Has("/billing")     // false
package pathset
