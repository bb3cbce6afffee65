package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/librarycatalog/backend/internal/models"
)

// TokenValidator verifies a bearer token and returns the identity it carries
type TokenValidator interface {
	ValidateToken(token string) (models.Identity, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller's identity in the context
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			identity, err := validator.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid token is present
// and lets anonymous or badly authenticated requests through untouched
func OptionalAuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				if identity, err := validator.ValidateToken(token); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleMiddleware rejects authenticated callers whose role differs from role.
// It must run after AuthMiddleware.
func RoleMiddleware(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if identity.Role != role {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// extractToken reads the token from the Authorization header, falling back to the access_token cookie
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
