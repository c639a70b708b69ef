package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"careerpath/internal/domain"
	"careerpath/internal/service"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "

	// Locals keys set by Protected for downstream handlers.
	UserIDKey = "userID"
	RoleKey   = "userRole"
)

// Protected requires a valid access token. On success the caller's id and
// role are stored in the request locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims, err := authService.ValidateToken(c.Context(), tokenString)
		if err != nil {
			return err
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, claims.Role)
		return c.Next()
	}
}

// RequireRole allows only callers whose resolved role is in the given set.
// Must run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return domain.NewForbiddenError("Caller role is not allowed for this operation")
	}
}

// UserID returns the authenticated caller's id from the request locals.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// Role returns the authenticated caller's resolved role from the request
// locals.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(RoleKey).(string)
	return role
}
