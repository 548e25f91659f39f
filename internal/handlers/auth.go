package handlers

import (
	"errors"

	"skybank/internal/services/auth"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(s auth.Service) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "username and password are required")
	}

	token, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "invalid username or password")
		}
		return utils.ServerError(c, "authentication failed")
	}
	return c.JSON(fiber.Map{"access_token": token})
}
