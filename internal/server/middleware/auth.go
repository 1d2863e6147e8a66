// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/hiring-portal/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// claimsKey is the context key for the validated token claims.
const claimsKey ContextKey = "claims"

// TokenValidator validates a bearer token. The JWT service implements it
// through an adapter so this package does not import the server.
type TokenValidator interface {
	ValidateToken(tokenString string) (SessionClaims, error)
}

// SessionClaims is what a validated token exposes to handlers.
type SessionClaims interface {
	GetSession() types.Session
	GetTokenID() string
	GetExpiry() time.Time
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// claims in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects sessions whose role differs from role. It must run
// after AuthMiddleware.
func RequireRole(role types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r)
			if !ok {
				deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if sess.Role != role {
				deny(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from a case-insensitive "Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], parts[1] != ""
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// GetClaims returns the validated claims of the request.
func GetClaims(r *http.Request) (SessionClaims, bool) {
	claims, ok := r.Context().Value(claimsKey).(SessionClaims)
	return claims, ok
}

// GetSession returns the session carried by the request's token.
func GetSession(r *http.Request) (types.Session, bool) {
	claims, ok := GetClaims(r)
	if !ok {
		return types.Session{}, false
	}
	return claims.GetSession(), true
}

// WithClaims returns ctx carrying claims (for tests and internal callers).
func WithClaims(ctx context.Context, claims SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
