// Package ledger applies single-account balance mutations under the
// engine's invariants: strictly positive amounts, non-negative balances and
// owner-only access.
package ledger

import (
	"context"
	"errors"
	"fmt"

	errs "skybank/internal/errors"
	"skybank/internal/models"
	"skybank/internal/repositories"
)

// Service exposes the single-account operations. Every call takes the
// caller's identity explicitly and returns the post-mutation account state.
type Service interface {
	GetAccount(ctx context.Context, identity models.Identity, accountID uint) (*models.Account, error)
	Deposit(ctx context.Context, identity models.Identity, accountID uint, amount int64) (*models.Account, error)
	Withdraw(ctx context.Context, identity models.Identity, accountID uint, amount int64) (*models.Account, error)
}

type service struct {
	repo   repositories.AccountRepository
	cache  repositories.CacheRepository
	guard  *Guard
	locker *AccountLocker
}

// NewService creates the ledger service. The locker must be the same
// instance handed to the transfer coordinator.
func NewService(repo repositories.AccountRepository, cache repositories.CacheRepository, guard *Guard, locker *AccountLocker) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		cache = repositories.NoopCache{}
	}
	if guard == nil {
		guard = NewGuard()
	}
	if locker == nil {
		locker = NewAccountLocker()
	}
	return &service{repo: repo, cache: cache, guard: guard, locker: locker}
}

func (s *service) GetAccount(ctx context.Context, identity models.Identity, accountID uint) (*models.Account, error) {
	if err := s.guard.RequireRegular(identity); err != nil {
		return nil, err
	}

	if account, err := s.cache.GetAccount(ctx, accountID); err == nil {
		if err := s.guard.AuthorizeAccount(identity, account); err != nil {
			return nil, err
		}
		return account, nil
	}

	account, err := s.fetch(accountID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeAccount(identity, account); err != nil {
		return nil, err
	}
	// Cache is best-effort; the durable store already answered.
	_ = s.cache.SetAccount(ctx, account)
	return account, nil
}

func (s *service) Deposit(ctx context.Context, identity models.Identity, accountID uint, amount int64) (*models.Account, error) {
	return s.mutate(ctx, identity, accountID, amount, func(account *models.Account) error {
		account.Balance += amount
		return nil
	})
}

func (s *service) Withdraw(ctx context.Context, identity models.Identity, accountID uint, amount int64) (*models.Account, error) {
	return s.mutate(ctx, identity, accountID, amount, func(account *models.Account) error {
		if account.Balance < amount {
			return errs.InsufficientFunds(amount, account.Currency)
		}
		account.Balance -= amount
		return nil
	})
}

// mutate runs a balance change as one atomic step: the account's lock is
// held from the fresh read until the write is committed, so no concurrent
// mutation can interleave with the read-check-write cycle.
func (s *service) mutate(ctx context.Context, identity models.Identity, accountID uint, amount int64, apply func(*models.Account) error) (*models.Account, error) {
	if err := s.guard.RequireRegular(identity); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	s.locker.Lock(accountID)
	defer s.locker.Unlock(accountID)

	account, err := s.fetch(accountID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeAccount(identity, account); err != nil {
		return nil, err
	}
	if err := apply(account); err != nil {
		return nil, err
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
		return tx.Update(account)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply balance change: %w", err)
	}

	_ = s.cache.DeleteAccount(ctx, accountID)
	return account, nil
}

func (s *service) fetch(accountID uint) (*models.Account, error) {
	account, err := s.repo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}
