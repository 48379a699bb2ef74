package broadcast

import "errors"

var (
	// ErrEncodeMessage is returned when a message payload cannot be JSON-encoded.
	ErrEncodeMessage = errors.New("broadcast: failed to encode message")

	// ErrPublishFailed is returned when the transport rejects a publish.
	ErrPublishFailed = errors.New("broadcast: failed to publish message")
)
