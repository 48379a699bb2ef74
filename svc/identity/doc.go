// Package identity keeps a user's authorization state in sync with their
// authentication state.
//
// The Manager subscribes to an auth.Client and, on start and on every auth
// event, resolves the signed-in user's roles and the union of paths those
// roles grant. The result is exposed as an immutable Snapshot answering
// "can the current user reach this path" with deny-by-default semantics:
// signing out, a resolution still in flight, or any resolution failure all
// collapse the path set to empty.
//
// Role data comes from a RoleStore. Implementations ship for Postgres,
// MongoDB, in-memory use, and static role definitions through an
// rbac.Authorizer; CachedStore layers an LRU and an optional Redis tier over
// any of them. The Resolver performs the same two-hop resolution for
// arbitrary users, e.g. per server request.
package identity
