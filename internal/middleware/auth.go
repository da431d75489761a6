package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
)

type contextKey string

const userKey contextKey = "user"

// TokenVerifier resolves a session token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// UserLoader fetches the account behind a verified token.
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// Session reads the session cookie and stores the user in the request
// context. A missing, expired or forged token, or a token for a deleted
// user, leaves the request anonymous.
func Session(cookieName string, tokens TokenVerifier, loader UserLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := tokens.Verify(c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			u, err := loader.GetByID(r.Context(), id)
			if err != nil {
				if !errors.Is(err, apperr.ErrNotFound) {
					logger.Warn("load session user", zap.String("user_id", id.String()), zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// WithUser attaches an authenticated user to ctx.
func WithUser(ctx context.Context, u *users.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(userKey).(*users.User)
	return u, ok && u != nil
}

// UserID returns the authenticated user's id or uuid.Nil.
func UserID(ctx context.Context) uuid.UUID {
	if u, ok := UserFromContext(ctx); ok {
		return u.ID
	}
	return uuid.Nil
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteError writes the {"error": msg} body used by every failure response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
