// Package auth defines the authentication surface consumed by the
// authorization layer: the current user, and a stream of events describing
// how that answer changes over time.
//
// The Client interface is deliberately small so it can wrap anything that
// answers "who is signed in" — a hosted auth provider, a session manager, or
// the in-process LocalClient shipped here. LocalClient supports password
// sign-in (bcrypt) and OAuth sign-in through provider adapters for Google
// and GitHub.
//
// Every sign-in, sign-out, and token refresh is broadcast to subscribers.
// The identity service (svc/identity) listens to this stream and re-derives
// the user's accessible paths on each change.
package auth
