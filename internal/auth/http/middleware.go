package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fairwaylabs/launchpoint/internal/auth/service"
	commonhttp "github.com/fairwaylabs/launchpoint/internal/common/http"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	userdomain "github.com/fairwaylabs/launchpoint/internal/user/domain"
)

type contextKey string

const userContextKey contextKey = "current_user"

// RequireAuth gates a handler behind a bearer token. The token is only a
// hint: the current user record is re-resolved on every request and attached
// to the context, so a deleted account stops authenticating immediately.
func RequireAuth(auth *service.AuthService, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				commonhttp.WriteError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrUserNotFound):
					commonhttp.WriteError(w, http.StatusForbidden, "User not found")
				case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
					commonhttp.WriteError(w, http.StatusForbidden, "Invalid token")
				default:
					log.Errorf("authentication failed path=%s: %v", r.URL.Path, err)
					commonhttp.WriteError(w, http.StatusInternalServerError, "Authentication failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentUser(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userContextKey).(userdomain.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return ""
	}

	scheme, token, found := strings.Cut(raw, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return token
}
