package repositories

import "skybank/internal/models"

// UserRepository handles user persistence. Users are created once at
// registration and never mutated by the engine.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)

	// List returns all users with their accounts, ordered by id.
	List() ([]models.User, error)
}
