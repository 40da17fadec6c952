package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/fjod/chess_academy/internal/auth"
	"github.com/fjod/chess_academy/internal/domain"
)

type contextKey int

const userContextKey contextKey = iota

// AuthMiddleware verifies the bearer token and stores the user in the
// request context. Requests without a valid token are rejected.
func AuthMiddleware(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			user, err := provider.Verify(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := withUser(r.Context(), *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func withUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func userFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok && user.ID != ""
}

// requireUser writes a 401 and reports false when the request carries no
// verified user.
func requireUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return domain.User{}, false
	}
	return user, true
}
