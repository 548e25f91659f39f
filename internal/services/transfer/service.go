// Package transfer orchestrates two-account mutations: debit one account,
// credit another, visible as a single unit or not at all.
package transfer

import (
	"context"
	"errors"
	"fmt"

	errs "skybank/internal/errors"
	"skybank/internal/models"
	"skybank/internal/repositories"
	"skybank/internal/services/ledger"
)

// Service moves funds between two accounts of matching currency.
type Service interface {
	Transfer(ctx context.Context, identity models.Identity, fromAccountID, toUserID, toAccountID uint, amount int64) error
}

type service struct {
	repo   repositories.AccountRepository
	cache  repositories.CacheRepository
	guard  *ledger.Guard
	locker *ledger.AccountLocker
}

// NewService creates the transfer coordinator. The locker must be the same
// instance used by the ledger service so single-account and two-account
// mutations exclude each other.
func NewService(repo repositories.AccountRepository, cache repositories.CacheRepository, guard *ledger.Guard, locker *ledger.AccountLocker) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		cache = repositories.NoopCache{}
	}
	if guard == nil {
		guard = ledger.NewGuard()
	}
	if locker == nil {
		locker = ledger.NewAccountLocker()
	}
	return &service{repo: repo, cache: cache, guard: guard, locker: locker}
}

// Transfer debits fromAccountID and credits toAccountID atomically.
// Precondition order: amount, source existence/ownership, destination
// existence/stated owner, currency match, funds. The first failure wins and
// nothing is written.
func (s *service) Transfer(ctx context.Context, identity models.Identity, fromAccountID, toUserID, toAccountID uint, amount int64) error {
	if err := s.guard.RequireRegular(identity); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}

	if fromAccountID == toAccountID {
		return s.selfTransfer(identity, fromAccountID, toUserID, amount)
	}

	// Both locks are taken in ascending id order (see AccountLocker) and
	// held until both writes are committed or the transfer is abandoned.
	s.locker.LockPair(fromAccountID, toAccountID)
	defer s.locker.UnlockPair(fromAccountID, toAccountID)

	from, err := s.fetch(fromAccountID)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeAccount(identity, from); err != nil {
		return err
	}

	to, err := s.fetch(toAccountID)
	if err != nil {
		return err
	}
	if to.UserID != toUserID {
		return errs.ErrAccountNotFound
	}

	if from.Currency != to.Currency {
		return errs.ErrCurrencyMismatch
	}
	if from.Balance < amount {
		return errs.InsufficientFunds(amount, from.Currency)
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
		from.Balance -= amount
		if err := tx.Update(from); err != nil {
			return err
		}
		to.Balance += amount
		return tx.Update(to)
	})
	if err != nil {
		return fmt.Errorf("failed to apply transfer: %w", err)
	}

	_ = s.cache.DeleteAccount(ctx, fromAccountID)
	_ = s.cache.DeleteAccount(ctx, toAccountID)
	return nil
}

// selfTransfer handles the degenerate same-account case: every validation
// still applies, but a debit immediately followed by a credit of the same
// account is observably a no-op, so no mutation (and no lock pairing) is
// needed.
func (s *service) selfTransfer(identity models.Identity, accountID, toUserID uint, amount int64) error {
	s.locker.Lock(accountID)
	defer s.locker.Unlock(accountID)

	account, err := s.fetch(accountID)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeAccount(identity, account); err != nil {
		return err
	}
	if account.UserID != toUserID {
		return errs.ErrAccountNotFound
	}
	if account.Balance < amount {
		return errs.InsufficientFunds(amount, account.Currency)
	}
	return nil
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
