package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "evently/internal/delivery/http/helpers"
	"evently/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

const (
	msgNoToken       = "No token, authorization denied"
	msgInvalidHeader = "Invalid authorization header format"
	msgInvalidToken  = "Token is not valid"
)

// SetUser returns a context carrying the authenticated user. Used by auth middleware.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return "", false
	}
	return u.ID, true
}

// UserLookup resolves the subject of a verified token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireAuth returns a wrapper that validates the Bearer token, loads its user and
// stores it in the request context. A token whose user no longer exists is rejected.
// On failure it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, users UserLookup, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	unauthorized := domain.KindUnauthorized.String()
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, unauthorized, msgNoToken)
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, unauthorized, msgInvalidHeader)
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, unauthorized, msgNoToken)
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, unauthorized, msgInvalidToken)
				return
			}
			if !domain.ValidID(userID) {
				h.WriteJSONError(w, http.StatusUnauthorized, unauthorized, msgInvalidToken)
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					h.WriteJSONError(w, http.StatusUnauthorized, unauthorized, msgInvalidToken)
					return
				}
				logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
				h.WriteError(w, err, false)
				return
			}
			next(w, r.WithContext(SetUser(r.Context(), user)))
		}
	}
}

// RequireRole returns a wrapper that only lets users holding role through. It must run
// after RequireAuth; a request without a user is treated as lacking the role.
func RequireRole(role domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user.Role != role {
				h.WriteError(w, domain.ErrForbidden, false)
				return
			}
			next(w, r)
		}
	}
}
