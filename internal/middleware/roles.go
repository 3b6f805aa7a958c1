package middleware

import (
	"fmt"
	"net/http"

	"github.com/wcraske/simpleCalendar/internal/api/httpx"
	"github.com/wcraske/simpleCalendar/internal/apperr"
)

// RequireRole wraps a handler and allows only the given role. It must run
// after Auth.
func RequireRole(need string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := FromCtx(r.Context())
			if !ok {
				httpx.WriteErr(w, r, fmt.Errorf("%w: not authenticated", apperr.ErrUnauthorized))
				return
			}
			if u.Role != need {
				httpx.WriteErr(w, r, fmt.Errorf("%w: %s role required", apperr.ErrForbidden, need))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
