package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/swingnotes/api/internal/token"
)

type contextKey struct{}

var identityKey contextKey

// AuthMiddleware rejects requests lacking a valid bearer token and
// attaches the verified identity to the request context. It never
// touches the stores.
func AuthMiddleware(tm *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "No token provided")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tm.Verify(tokenString)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity attached by AuthMiddleware
func IdentityFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*token.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
