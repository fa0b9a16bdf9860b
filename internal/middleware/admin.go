package middleware

import (
	"errors"
	"net/http"

	"wallet/internal/policy"
)

// RequireAdmin gates admin routes. The access decision itself lives in the
// policy package so the service layer enforces the same rule.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ := ActorFromContext(r.Context())
		if err := policy.RequireAdmin(actor); err != nil {
			if errors.Is(err, policy.ErrNotAuthenticated) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "admin privileges required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
