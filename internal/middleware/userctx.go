package middleware

import (
	"context"

	"github.com/wcraske/simpleCalendar/internal/models"
)

type userKey struct{}

func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// FromCtx returns the authenticated user placed by Auth.
func FromCtx(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey{}).(models.User)
	return u, ok
}
