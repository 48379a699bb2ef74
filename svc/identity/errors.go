package identity

import "errors"

var (
	// ErrAlreadyStarted is returned when Start is called on a running Manager.
	ErrAlreadyStarted = errors.New("identity: manager already started")

	// ErrClosed is returned by operations on a closed Manager.
	ErrClosed = errors.New("identity: manager closed")
)
