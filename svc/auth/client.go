package auth

import (
	"context"

	"github.com/gatekit/gatekit/pkg/broadcast"
)

// Client is the authentication surface consumed by authorization components:
// who is signed in right now, and a stream of changes to that answer.
//
// Implementations may wrap a hosted auth provider, a session manager, or the
// in-process LocalClient.
type Client interface {
	// CurrentUser returns the currently authenticated user.
	// Returns ErrNotAuthenticated when nobody is signed in.
	CurrentUser(ctx context.Context) (*User, error)

	// Subscribe returns a subscriber delivering subsequent auth events.
	// Cancelling the context tears the subscription down.
	Subscribe(ctx context.Context) broadcast.Subscriber[Event]
}
