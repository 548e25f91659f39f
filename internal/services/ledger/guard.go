package ledger

import (
	errs "skybank/internal/errors"
	"skybank/internal/models"
)

// Guard is the single place deciding whether a caller may touch an account.
// Two rules, applied everywhere the engine reads or mutates balances:
//
//   - administrators never see individual accounts (they are scoped to user
//     management), so a wrong role yields RoleForbidden;
//   - a regular user may only touch accounts they own, and a wrong owner
//     yields AccountNotFound rather than Forbidden so the response does not
//     leak that someone else's account exists.
type Guard struct{}

func NewGuard() *Guard { return &Guard{} }

// CanAccess reports whether the identity may read or mutate the account.
func (g *Guard) CanAccess(identity models.Identity, account *models.Account) bool {
	return !identity.IsAdmin() && account.UserID == identity.UserID
}

// RequireRegular rejects administrator identities before any account is
// fetched.
func (g *Guard) RequireRegular(identity models.Identity) error {
	if identity.IsAdmin() {
		return errs.ErrRoleForbidden
	}
	return nil
}

// AuthorizeAccount enforces the full policy against a fetched account.
func (g *Guard) AuthorizeAccount(identity models.Identity, account *models.Account) error {
	if identity.IsAdmin() {
		return errs.ErrRoleForbidden
	}
	if account.UserID != identity.UserID {
		return errs.ErrAccountNotFound
	}
	return nil
}
