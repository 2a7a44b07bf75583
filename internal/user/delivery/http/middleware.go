package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"equiptrack/internal/user/domain"
	"equiptrack/pkg/auth"
)

// AuthGuard authenticates requests and enforces role requirements.
// The role is re-read from storage on every request so that demotions
// take effect before the token expires.
type AuthGuard struct {
	users domain.Repository
}

// NewAuthGuard creates a new auth guard
func NewAuthGuard(users domain.Repository) *AuthGuard {
	return &AuthGuard{users: users}
}

// Authenticate validates the bearer token and injects the principal into
// the request context.
func (g *AuthGuard) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := g.users.FindByID(claims.UserID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}

		principal := auth.Principal{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	}
}

// Require authenticates and then checks the principal's role against the
// allowed set. An empty set means any authenticated user.
func (g *AuthGuard) Require(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return g.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		if len(roles) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		respondError(w, http.StatusForbidden, "Insufficient permissions")
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
