package sessionerrors

import "errors"

// Session-boundary sentinel errors. Used by the session, ws, and api
// packages to avoid circular imports.
var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionEnded          = errors.New("session already ended")
	ErrNotSessionOwner       = errors.New("session belongs to another user")
	ErrUnknownCountingSystem = errors.New("unknown counting system")
)
