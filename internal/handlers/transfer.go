package handlers

import (
	"skybank/internal/middleware"
	"skybank/internal/services/transfer"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the cross-account transfer endpoint.
type TransferHandler struct {
	service transfer.Service
}

func NewTransferHandler(s transfer.Service) *TransferHandler {
	return &TransferHandler{service: s}
}

type transferRequest struct {
	FromAccountID uint  `json:"fromAccountId"`
	ToUserID      uint  `json:"toUserId"`
	ToAccountID   uint  `json:"toAccountId"`
	Amount        int64 `json:"amount"`
}

// Transfer handles POST /transfer. A successful transfer returns no body;
// callers query the accounts separately.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "unauthorized")
	}
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	err := h.service.Transfer(c.Context(), claims.Identity(), req.FromAccountID, req.ToUserID, req.ToAccountID, req.Amount)
	if err != nil {
		return renderError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
