package relay

import "errors"

var (
	// ErrNoClient means no automation client is admitted, or it
	// disconnected while the request was pending.
	ErrNoClient = errors.New("no automation client connected")

	// ErrTimeout means the client did not reply within the deadline.
	ErrTimeout = errors.New("automation client did not reply in time")

	// ErrSessionBusy rejects a second client while one is admitted.
	ErrSessionBusy = errors.New("another client is already connected")

	// ErrDuplicateRequest rejects a send whose correlation key is
	// already in flight.
	ErrDuplicateRequest = errors.New("request with the same correlation key is pending")
)
