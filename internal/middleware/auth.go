// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"strings"

	"skybank/internal/models"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the bearer token and stores the claims in the request
// context. Role and ownership decisions happen later, in the services.
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// Claims extracts the authenticated claims stored by Auth.
func Claims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok && claims != nil
}
