package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account as reported by the auth backend.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// EventType identifies what changed in the authentication state.
type EventType string

const (
	// EventSignedIn is emitted when a user authenticates.
	EventSignedIn EventType = "signed_in"
	// EventSignedOut is emitted when the session ends.
	EventSignedOut EventType = "signed_out"
	// EventTokenRefreshed is emitted when credentials are renewed for the
	// same user. Consumers re-resolve authorization state on it.
	EventTokenRefreshed EventType = "token_refreshed"
	// EventUserUpdated is emitted when the user's profile or role
	// assignments changed out of band.
	EventUserUpdated EventType = "user_updated"
)

// Event describes a single authentication state change.
// User is nil for EventSignedOut.
type Event struct {
	Type EventType `json:"type"`
	User *User     `json:"user,omitempty"`
	At   time.Time `json:"at"`
}
