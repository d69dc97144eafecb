package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/domain/authz"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/pkg/jwt"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSuperuser = "superuser"
)

// AuthMiddleware validates the Bearer JWT and stores the actor identity in
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "expected format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "empty token"})
		}
		userID, role, superuser, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "invalid or expired token"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalSuperuser, superuser)
		return c.Next()
	}
}

// GetActor rebuilds the authenticated actor from c.Locals (after
// AuthMiddleware).
func GetActor(c *fiber.Ctx) (authz.Actor, bool) {
	id, _ := c.Locals(LocalUserID).(string)
	if id == "" {
		return authz.Actor{}, false
	}
	role, _ := c.Locals(LocalRole).(string)
	superuser, _ := c.Locals(LocalSuperuser).(bool)
	return authz.Actor{ID: id, Role: entity.Role(role), Superuser: superuser}, true
}

// RequireRole rejects actors whose role is not in the list. Superusers pass
// regardless.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "authentication required"})
		}
		if actor.IsAdmin() {
			return c.Next()
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "insufficient role"})
	}
}
