package middleware

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// RequireAtLeast enforces role hierarchy: admin >= moderator >= user.
// Assumes Auth() middleware has already injected the principal.
func RequireAtLeast(minRole string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil {
				// Middleware ordering issue (Auth not applied) or context missing
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			if !domain.IsValidRole(p.Role) || !domain.IsValidRole(minRole) {
				// Unknown role or misconfig
				writeErr(w, r, domain.ErrForbidden())
				return
			}

			if domain.RoleRank(p.Role) < domain.RoleRank(minRole) {
				writeErr(w, r, domain.ErrInsufficientRole(minRole))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
