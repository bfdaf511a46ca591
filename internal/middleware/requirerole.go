package middleware

import (
	"net/http"

	"github.com/rfalmeida/facility-control/internal/models"
)

// RequireRole gates a route group behind a minimum role. Apply after JWT so
// the role claim is in context. A caller below the minimum gets 403; the
// denial is an HTTP-level authorization failure, distinct from area access
// decisions, which are evaluated and logged by the access package.
func RequireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok || !role.AtLeast(min) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
