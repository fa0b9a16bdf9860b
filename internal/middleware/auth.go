package middleware

import (
	"context"
	"net/http"
	"strings"

	"wallet/internal/auth"
	"wallet/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

func ActorFromContext(ctx context.Context) (*models.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*models.Actor)
	return actor, ok
}

func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}
			actor, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), actorKey, &actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
