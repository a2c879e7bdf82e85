// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const candidateIDKey ContextKey = "candidateID"

// TokenValidator validates bearer tokens. Keeping this an interface lets
// the middleware work with the JWT service without an import cycle.
type TokenValidator interface {
	ValidateToken(tokenString string) (CandidateIDGetter, error)
}

// CandidateIDGetter extracts the candidate ID from token claims.
type CandidateIDGetter interface {
	GetCandidateID() uuid.UUID
}

// Auth creates middleware that validates bearer tokens and stores the
// authenticated candidate ID in the request context.
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), candidateIDKey, claims.GetCandidateID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCandidateID extracts the authenticated candidate ID from the request
// context.
func GetCandidateID(r *http.Request) (uuid.UUID, error) {
	candidateID, ok := r.Context().Value(candidateIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("candidate ID not found in request context")
	}
	return candidateID, nil
}

// CandidateIDKey returns the context key for the candidate ID, for tests.
func CandidateIDKey() ContextKey {
	return candidateIDKey
}
