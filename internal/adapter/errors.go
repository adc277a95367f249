package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError. Callers use
// [errors.Is] for transport-agnostic handling.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrUnavailable indicates the server could not serve the request at
	// all (502/503/504). A sync cycle that hits it is retried on the next
	// tick rather than surfaced as a data error.
	ErrUnavailable = errors.New("server unavailable")
)
