package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"bursar/internal/domain/user"
	"bursar/internal/shared/auth"
)

type ContextKey string

const UserKey ContextKey = "user"

// CurrentUser returns the authenticated user stored by Auth, or nil.
func CurrentUser(ctx context.Context) *user.User {
	u, _ := ctx.Value(UserKey).(*user.User)
	return u
}

// Auth validates the bearer token and resolves the current user from
// storage on every request, so a deleted user is locked out immediately
// even while holding a still-valid token. Missing token is 401; a bad
// signature or expired token is 403.
func Auth(jwt *auth.JWT, userRepo user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				writeAuthError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := jwt.Validate(parts[1])
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			u, err := userRepo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					writeAuthError(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				log.Printf("Auth middleware: failed to load user %d: %v", claims.UserID, err)
				writeAuthError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
