// Package policy decides whether an authenticated user may act on an event.
// Every function is pure: callers load the actor and the event and pass them in.
package policy

import (
	"fmt"

	"github.com/wcraske/simpleCalendar/internal/apperr"
	"github.com/wcraske/simpleCalendar/internal/models"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize applies the owner-or-admin rule to a single event.
func Authorize(actor models.User, action Action, ev models.Event) error {
	if actor.IsAdmin() || actor.ID == ev.OwnerID {
		return nil
	}
	return fmt.Errorf("%w: you do not have permission to %s this event", apperr.ErrForbidden, action)
}

// CreateTarget resolves who will own a new event. Admins must name the owner;
// regular users always own what they create and may not target anyone else.
func CreateTarget(actor models.User, requested string) (string, error) {
	if actor.IsAdmin() {
		if requested == "" {
			return "", fmt.Errorf("%w: admin must specify a user_id", apperr.ErrBadRequest)
		}
		return requested, nil
	}
	if requested != "" && requested != actor.ID {
		return "", fmt.Errorf("%w: only admins may create events for other users", apperr.ErrForbidden)
	}
	return actor.ID, nil
}

// ListScope returns the owner filter for a listing; "" means every owner.
func ListScope(actor models.User) string {
	if actor.IsAdmin() {
		return ""
	}
	return actor.ID
}

// RequireAdmin guards user administration.
func RequireAdmin(actor models.User) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperr.ErrForbidden)
	}
	return nil
}
