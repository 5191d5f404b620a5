package gateway

import "errors"

// Sentinel errors returned by gateway implementations. Backend error bodies
// are wrapped around these so callers can both match with errors.Is and
// inspect the raw backend text.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrTimeout      = errors.New("request timed out")
	ErrNotFound     = errors.New("not found")
)
