package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"railcare/models"
	"railcare/service"
	"railcare/utils"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorFromContext returns the authenticated actor placed in the request
// context by RequireAuth.
func ActorFromContext(ctx context.Context) (*models.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*models.Actor)
	return actor, ok
}

// ContextWithActor returns a context carrying the actor. Used by RequireAuth
// and by handler tests that bypass the middleware chain.
func ContextWithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// AuthMiddleware validates bearer tokens and resolves the request actor.
// All identity is request-scoped; there is no session store.
type AuthMiddleware struct {
	userService *service.UserService
	jwtSecret   []byte
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(userService *service.UserService, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		jwtSecret:   []byte(jwtSecret),
	}
}

// RequireAuth validates the JWT and sets the actor in the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "Invalid authorization format. Expected: Bearer <token>")
			return
		}

		tokenActor, err := utils.ParseJWT(parts[1], m.jwtSecret)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		actor, err := m.userService.ResolveActor(tokenActor)
		if err != nil {
			unauthorized(w, "Account not found or disabled")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

// RequireRole wraps RequireAuth and additionally restricts the route to the
// given roles.
func (m *AuthMiddleware) RequireRole(next http.Handler, roles ...models.Role) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			unauthorized(w, "Authentication required")
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		forbidden(w, "Insufficient role for this endpoint")
	}))
}

// RequireStaff restricts the route to admin, controller and viewer roles.
func (m *AuthMiddleware) RequireStaff(next http.Handler) http.Handler {
	return m.RequireRole(next, models.RoleAdmin, models.RoleController, models.RoleViewer)
}

// RequireAdmin restricts the route to admins.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(next, models.RoleAdmin)
}

func unauthorized(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnauthorized, models.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
		Code:    http.StatusUnauthorized,
	})
}

func forbidden(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusForbidden, models.ErrorResponse{
		Error:   "Forbidden",
		Message: message,
		Code:    http.StatusForbidden,
	})
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
