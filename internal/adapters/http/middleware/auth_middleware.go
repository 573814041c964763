package middleware

import (
	"strings"

	"godavari-scm/internal/config"
	"godavari-scm/internal/core/services"
	"godavari-scm/internal/pkg/jwt"
	"godavari-scm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)
		c.Locals("role", claims.Role)
		c.Locals("locationID", claims.LocationID)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("ADMIN")
}

// OperatorOrAdmin middleware allows OPERATOR or ADMIN roles
func OperatorOrAdmin() fiber.Handler {
	return RoleMiddleware("OPERATOR", "ADMIN")
}

// ActorFromContext rebuilds the acting user from the auth middleware locals
func ActorFromContext(c *fiber.Ctx) services.Actor {
	actor := services.Actor{}
	if userID, ok := c.Locals("userID").(uint); ok {
		actor.ID = userID
	}
	if role, ok := c.Locals("role").(string); ok {
		actor.Role = role
	}
	if locationID, ok := c.Locals("locationID").(*uint); ok {
		actor.LocationID = locationID
	}
	return actor
}
