package handlers

import (
	"skybank/internal/middleware"
	"skybank/internal/services/ledger"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler exposes the single-account ledger endpoints.
type AccountHandler struct {
	ledger ledger.Service
}

func NewAccountHandler(ledgerService ledger.Service) *AccountHandler {
	return &AccountHandler{ledger: ledgerService}
}

type balanceChangeRequest struct {
	Amount int64 `json:"amount"`
}

// GetAccount handles GET /account/:id.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID <= 0 {
		return utils.BadRequest(c, "invalid account id")
	}

	account, err := h.ledger.GetAccount(c.Context(), claims.Identity(), uint(accountID))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(account)
}

// Deposit handles POST /account/deposit/:id.
func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID <= 0 {
		return utils.BadRequest(c, "invalid account id")
	}
	var req balanceChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	account, err := h.ledger.Deposit(c.Context(), claims.Identity(), uint(accountID), req.Amount)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(account)
}

// Withdraw handles POST /account/withdraw/:id.
func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}
	accountID, err := c.ParamsInt("id")
	if err != nil || accountID <= 0 {
		return utils.BadRequest(c, "invalid account id")
	}
	var req balanceChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	account, err := h.ledger.Withdraw(c.Context(), claims.Identity(), uint(accountID), req.Amount)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(account)
}
