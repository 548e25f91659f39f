package repositories

import (
	"errors"

	"skybank/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// AccountRepository is the durable account store the engine mutates. The
// engine owns no persistence mechanics; all it needs is get-by-id, update
// and an all-or-nothing transaction wrapper for multi-account writes.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByUserID(userID uint) ([]models.Account, error)
	Update(account *models.Account) error

	// ExecuteInTransaction runs fn against a repository bound to a single
	// transaction; any error rolls back every write made inside fn.
	ExecuteInTransaction(fn func(AccountRepository) error) error
}
