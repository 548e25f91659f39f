// Package auth authenticates users and issues access tokens.
package auth

import (
	"errors"
	"fmt"

	"skybank/internal/models"
	"skybank/internal/repositories"
	"skybank/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(username, password string) (string, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{userRepo: userRepo}
}

// Login verifies the credentials and returns a signed access token.
func (s *service) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(&models.UserClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}
