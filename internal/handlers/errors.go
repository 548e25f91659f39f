package handlers

import (
	"errors"

	errs "skybank/internal/errors"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// renderError maps a service error onto the HTTP surface. Domain errors
// carry their own client-facing message; anything else is an internal
// failure the client should not see details of.
func renderError(c *fiber.Ctx, err error) error {
	var de *errs.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case errs.ErrAccountNotFound.Code, errs.ErrUserNotFound.Code:
			return utils.NotFound(c, de.Message)
		case errs.ErrRoleForbidden.Code:
			return utils.Forbidden(c, de.Message)
		default:
			return utils.BadRequest(c, de.Message)
		}
	}
	return utils.ServerError(c, "internal server error")
}
