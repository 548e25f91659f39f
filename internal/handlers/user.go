package handlers

import (
	"skybank/internal/middleware"
	"skybank/internal/models"
	"skybank/internal/services/user"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes user management endpoints.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(s user.Service) *UserHandler {
	return &UserHandler{service: s}
}

// publicAccountView is what other users may learn about an account: its id
// and currency, never its balance.
type publicAccountView struct {
	AccountID uint            `json:"accountId"`
	Currency  models.Currency `json:"currency"`
}

type publicUserView struct {
	ID       uint                `json:"id"`
	Username string              `json:"username"`
	Accounts []publicAccountView `json:"accounts"`
}

// CreateUser handles POST /user/ (administrators only).
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}
	var input user.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "username and password are required")
	}

	created, err := h.service.Register(c.Context(), claims.Identity(), input)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(created)
}

// ListUsers handles GET /user/list (regular users only).
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}

	users, err := h.service.List(c.Context(), claims.Identity())
	if err != nil {
		return renderError(c, err)
	}

	views := make([]publicUserView, 0, len(users))
	for _, u := range users {
		view := publicUserView{ID: u.ID, Username: u.Username}
		for _, a := range u.Accounts {
			view.Accounts = append(view.Accounts, publicAccountView{AccountID: a.ID, Currency: a.Currency})
		}
		views = append(views, view)
	}
	return c.JSON(views)
}

// Me handles GET /user/me (regular users only).
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}

	me, err := h.service.Me(c.Context(), claims.Identity())
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(me)
}
