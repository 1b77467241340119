package middleware

import (
	"net/http"
)

// RequireRole returns middleware that allows the request through only when
// the session role matches one of the given role names. Must run inside
// Auth. Rejections carry no side effects: the protected handler is never
// reached.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "unauthorized")
		})
	}
}
