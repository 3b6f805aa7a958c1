// Package apperr holds the error taxonomy shared by services and the HTTP layer.
// Services wrap these sentinels with fmt.Errorf("%w: ...") so callers can match
// them with errors.Is and still carry a readable message.
package apperr

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrBadRequest          = errors.New("bad request")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
