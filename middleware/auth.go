package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nova-properties/backend/utils"
)

type contextKey string

const userKey = contextKey("user")

// AuthUser is the authenticated identity attached to the request context.
type AuthUser struct {
	ID   string
	Role string
}

// UserFromContext returns the authenticated user set by Authenticate or
// OptionalAuth.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(userKey).(AuthUser)
	return user, ok
}

// WithUser returns a context carrying the authenticated identity.
func WithUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Authenticate verifies the access token from the access_token cookie (or a
// Bearer header as fallback) and halts with 401 on any failure. Ownership
// checks against path parameters stay in the handlers.
func Authenticate(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				unauthorized(w, r, "missing access token")
				return
			}

			claims, err := utils.ValidateAccessToken(token, secret)
			if err != nil {
				unauthorized(w, r, err.Error())
				return
			}

			ctx := WithUser(r.Context(), AuthUser{ID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid access token is present
// and passes the request through untouched otherwise. Used by the contact
// endpoint, which accepts anonymous submissions.
func OptionalAuth(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				if claims, err := utils.ValidateAccessToken(token, secret); err == nil {
					r = r.WithContext(WithUser(r.Context(), AuthUser{ID: claims.UserID, Role: claims.Role}))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	log.Printf("Unauthorized request %s %s: %s", r.Method, r.URL.Path, reason)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
