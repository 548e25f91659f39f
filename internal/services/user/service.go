// Package user handles registration and user listing. Registration is an
// administrator operation; everything else is for regular users only.
package user

import (
	"context"
	"errors"
	"fmt"

	errs "skybank/internal/errors"
	"skybank/internal/models"
	"skybank/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AccountInput is a caller-supplied initial balance for one currency.
type AccountInput struct {
	Amount   int64           `json:"amount"`
	Currency models.Currency `json:"currency"`
}

// CreateUserInput is the registration request.
type CreateUserInput struct {
	Username string         `json:"username"`
	Password string         `json:"password"`
	Accounts []AccountInput `json:"accounts"`
}

type Service interface {
	// Register creates a user plus one account per supported currency, in
	// the fixed USD, EUR, RUB order. Administrator identities only.
	Register(ctx context.Context, identity models.Identity, input CreateUserInput) (*models.User, error)

	// List returns every user with the public view of their accounts.
	// Regular identities only.
	List(ctx context.Context, identity models.Identity) ([]models.User, error)

	// Me returns the caller's own profile with account balances.
	Me(ctx context.Context, identity models.Identity) (*models.User, error)
}

type service struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
}

func NewService(userRepo repositories.UserRepository, accountRepo repositories.AccountRepository) Service {
	return &service{userRepo: userRepo, accountRepo: accountRepo}
}

func (s *service) Register(ctx context.Context, identity models.Identity, input CreateUserInput) (*models.User, error) {
	if !identity.IsAdmin() {
		return nil, errs.ErrRoleForbidden
	}

	initial, err := initialBalances(input.Accounts)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, errs.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, currency := range models.DefaultCurrencies() {
		account := &models.Account{
			UserID:   user.ID,
			Currency: currency,
			Balance:  initial[currency],
		}
		if err := s.accountRepo.Create(account); err != nil {
			return nil, fmt.Errorf("failed to create %s account: %w", currency, err)
		}
		user.Accounts = append(user.Accounts, *account)
	}

	user.Password = ""
	return user, nil
}

func (s *service) List(ctx context.Context, identity models.Identity) ([]models.User, error) {
	if identity.IsAdmin() {
		return nil, errs.ErrRoleForbidden
	}
	return s.userRepo.List()
}

func (s *service) Me(ctx context.Context, identity models.Identity) (*models.User, error) {
	if identity.IsAdmin() {
		return nil, errs.ErrRoleForbidden
	}
	user, err := s.userRepo.GetByID(identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// initialBalances maps the caller-supplied amounts by currency; currencies
// missing from the request start at zero.
func initialBalances(inputs []AccountInput) (map[models.Currency]int64, error) {
	initial := make(map[models.Currency]int64, len(inputs))
	for _, in := range inputs {
		if !in.Currency.Valid() {
			return nil, errs.ErrInvalidCurrency
		}
		if in.Amount < 0 {
			return nil, errs.ErrInvalidAmount
		}
		initial[in.Currency] = in.Amount
	}
	return initial, nil
}
