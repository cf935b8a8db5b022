package remote

import "errors"

// Adapters report failures with these so callers can match them with
// errors.Is whatever the transport.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAccessDenied           = errors.New("access denied")
	ErrNotFound               = errors.New("not found")
	ErrTransient              = errors.New("network error")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrConflict               = errors.New("conflict")
	ErrInternalError          = errors.New("internal error")
)
