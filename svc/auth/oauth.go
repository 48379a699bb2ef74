package auth

import "context"

// OAuth provider identifiers used across the auth system.
const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// ProviderAdapter abstracts provider-specific OAuth behavior behind a
// minimal interface. Implementations encapsulate all protocol details
// (oauth2.Config, token exchange, profile endpoints) and expose only the
// primitives the client needs.
type ProviderAdapter interface {
	// ProviderID returns a stable provider identifier, e.g. "google".
	ProviderID() string

	// AuthURL builds the provider authorization URL for the given state token.
	AuthURL(state string) (string, error)

	// ResolveProfile exchanges an authorization code for a normalized
	// profile. Exchange failures map to ErrInvalidCode; providers unable
	// to produce an email return ErrNoPrimaryEmail.
	ResolveProfile(ctx context.Context, code string) (Profile, error)
}

// Profile is the normalized user profile returned by a provider.
type Profile struct {
	// ProviderUserID is the provider's stable user identifier as a string.
	ProviderUserID string

	// Email is the address reported by the provider.
	Email string

	// EmailVerified indicates whether the provider asserts the email is verified.
	EmailVerified bool

	// Name is the display name from the provider (optional).
	Name string

	// AvatarURL is the user's avatar image URL (optional).
	AvatarURL string
}
