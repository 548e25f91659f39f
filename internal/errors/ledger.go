package errors

import (
	"fmt"

	"skybank/internal/models"
)

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "Amount should be more than 0",
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
	}
	ErrCurrencyMismatch = &DomainError{
		Code:    "CURRENCY_MISMATCH",
		Message: "account currencies do not match",
	}
	ErrRoleForbidden = &DomainError{
		Code:    "ROLE_FORBIDDEN",
		Message: "operation is not available for this role",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
	}
)

// InsufficientFunds builds the client-facing insufficient-funds error naming
// the requested amount and currency. Matches ErrInsufficientFunds under
// errors.Is.
func InsufficientFunds(amount int64, currency models.Currency) *DomainError {
	return &DomainError{
		Code:    ErrInsufficientFunds.Code,
		Message: fmt.Sprintf("Cannot withdraw %d %s", amount, currency),
	}
}
