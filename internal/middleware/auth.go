// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/taskboard/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenVerifier validates a session token and returns the user ID it
// was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserResolver loads the user record a verified token refers to.
type UserResolver interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It extracts the token from the Authorization header, verifies it, and
// resolves the referenced user. Requests with a missing or malformed
// header, a token that fails verification, or a user that no longer
// exists are rejected with 401.
//
// On success the resolved user record is stored in the request context,
// so it can be used downstream as the authenticated identity.
func BearerAuth(tokens TokenVerifier, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			user, err := users.UserByID(r.Context(), userID)
			if err != nil {
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// ContextWithUser returns a context carrying the authenticated user record.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext extracts the authenticated user record from the
// request context. Returns nil if not found.
func GetUserFromContext(ctx context.Context) *models.User {
	val := ctx.Value(userKey)
	if u, ok := val.(*models.User); ok {
		return u
	}
	return nil
}
