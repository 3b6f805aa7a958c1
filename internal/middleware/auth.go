// internal/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/wcraske/simpleCalendar/internal/api/httpx"
	"github.com/wcraske/simpleCalendar/internal/apperr"
	"github.com/wcraske/simpleCalendar/internal/logger"
	"github.com/wcraske/simpleCalendar/internal/models"
)

// Authenticator resolves a bearer token to a stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

type AuthMiddleware struct {
	users Authenticator
}

func NewAuthMiddleware(users Authenticator) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

func bearerToken(r *http.Request) (string, bool) {
	ah := r.Header.Get("Authorization")
	if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(ah[len("Bearer "):])
	return tok, tok != ""
}

// Auth requires "Authorization: Bearer <jwt>" and stores the resolved user in
// the request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.WriteErr(w, r, fmt.Errorf("%w: not authenticated", apperr.ErrUnauthorized))
			return
		}

		u, err := m.users.Authenticate(r.Context(), token)
		if err != nil {
			httpx.WriteErr(w, r, err)
			return
		}

		ctx := WithUser(r.Context(), u)
		ctx = logger.IntoContext(ctx, logger.FromContext(ctx).With("user_id", u.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
