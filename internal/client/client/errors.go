package client

import "errors"

var (
	// ErrUnavailable means the gateway could not be reached or did not
	// answer in time. Callers fall back to the device copy.
	ErrUnavailable = errors.New("gateway unavailable")
	// ErrUnauthorized is returned when the session is missing or cannot be
	// refreshed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLocalDataNotAvailable means no cached credentials exist on this
	// device for an offline login.
	ErrLocalDataNotAvailable = errors.New("no offline credentials on this device")
)
