package auth

import "errors"

var (
	// ErrNotAuthenticated is returned when no user is signed in.
	ErrNotAuthenticated = errors.New("auth: not authenticated")

	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so callers can't probe which accounts exist.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUserNotFound is returned when a user lookup comes up empty.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrUserExists is returned when creating a user with a taken email.
	ErrUserExists = errors.New("auth: user already exists")

	// ErrInvalidCode is returned when an OAuth code exchange fails.
	ErrInvalidCode = errors.New("auth: invalid authorization code")

	// ErrNoPrimaryEmail is returned when an OAuth provider cannot supply an email.
	ErrNoPrimaryEmail = errors.New("auth: provider returned no usable email")

	// ErrUnverifiedEmail is returned when the provider email is not verified.
	ErrUnverifiedEmail = errors.New("auth: provider email is not verified")
)
