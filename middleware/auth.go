package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"shipment-tracking/constants"
	"shipment-tracking/types"
)

// IsAuthenticated parses the Bearer token and gates the request on the
// allowed role levels. Valid claims land in c.Locals("user").
func IsAuthenticated(allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization header is required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid token claims",
				Status:  fiber.StatusUnauthorized,
			})
		}

		role, _ := claims["role"].(string)
		c.Locals("user", claims)
		c.Locals("role", role)

		if !roleAllowed(allowedRoles, role) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Insufficient role",
				Status:  fiber.StatusForbidden,
			})
		}

		return c.Next()
	}
}

// RequireRoles gates a route on specific role levels.
func RequireRoles(roles ...string) fiber.Handler {
	return IsAuthenticated(roles)
}

// RequireAuthentication only requires a valid login, any role.
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated([]string{constants.RoleAny})
}

// ActorFromContext returns the username of the authenticated caller; services
// take it as an explicit argument for audit fields.
func ActorFromContext(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// RoleFromContext returns the role level of the authenticated caller.
func RoleFromContext(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}

func roleAllowed(allowed []string, role string) bool {
	for _, a := range allowed {
		if a == constants.RoleAny && role != "" {
			return true
		}
		if a == role {
			return true
		}
	}
	return false
}
