package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/paddock/internal/auth"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
	// ImpersonatorIDKey is the context key for the admin behind a
	// switched session, zero when the session is genuine
	ImpersonatorIDKey ContextKey = "impersonatorID"
)

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie("accessToken")
	if err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware returns a middleware that validates JWT tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			if claims.Impersonated {
				ctx = context.WithValue(ctx, ImpersonatorIDKey, claims.ImpersonatorID)
			}

			AddLogField(w, "user_id", claims.UserID)
			if claims.Impersonated {
				AddLogField(w, "impersonator_id", claims.ImpersonatorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns a middleware that rejects non-admin users. Must run
// after AuthMiddleware.
func RequireAdmin(users user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r)
			if !ok {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid session"))
				return
			}
			if !u.IsAdmin {
				utils.WriteError(w, errors.Forbidden("Administrator access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	return email, ok
}

// GetImpersonatorID extracts the impersonating admin's ID, if any
func GetImpersonatorID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(ImpersonatorIDKey).(int64)
	return id, ok
}
