package services

import (
	"fmt"

	"github.com/wcraske/simpleCalendar/internal/apperr"
)

var (
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", apperr.ErrBadRequest)
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", apperr.ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	ErrEventNotFound      = fmt.Errorf("%w: event not found", apperr.ErrNotFound)
)
