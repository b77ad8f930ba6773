// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// principalKey is the context key for the authenticated caller.
const principalKey ContextKey = "principal"

// Principal is the authenticated caller described by a token.
type Principal interface {
	GetUsername() string
	GetIsAdmin() bool
}

// TokenValidator validates a bearer token and returns its principal.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// Authenticate parses an optional "Authorization: Bearer <token>" header
// and stores the principal in the request context. Requests without a
// valid token continue anonymously; routes that need a caller wrap
// themselves in RequireAdmin.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := validator.ValidateToken(tokenString)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects the request with 401 unless the caller is an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r)
		if !ok || !principal.GetIsAdmin() {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal returns the authenticated caller from the request context.
func GetPrincipal(r *http.Request) (Principal, bool) {
	principal, ok := r.Context().Value(principalKey).(Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying principal (for testing purposes).
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// bearerToken extracts the token from a case-insensitive "Bearer" header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
