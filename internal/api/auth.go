package api

import (
	"net/http"
	"strings"
	"time"

	"roomreserve/pkg/config"
	"roomreserve/pkg/identity"
)

// RequireTeacher gates the restricted routes (full listing, decisions).
//
// Expected header:
// - Authorization: Bearer <token>
//
// Student-classified callers are rejected outright, not down-scoped.
func RequireTeacher(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authz, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			id, err := identity.VerifyToken(token, cfg.Auth.Secret, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid identity token")
				return
			}
			if id.Role != identity.RoleTeacher {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "teachers only")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
