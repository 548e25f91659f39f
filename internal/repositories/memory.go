package repositories

import (
	"sync"

	"skybank/internal/models"
)

// InMemoryAccountRepository is a map-backed AccountRepository. It backs the
// service and handler tests so concurrency properties run against a real
// shared store, and assigns ids the way the database does: positive,
// monotonically increasing from 1.
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	nextID   uint
	accounts map[uint]models.Account
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{accounts: make(map[uint]models.Account)}
}

func (r *InMemoryAccountRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = r.nextID
	r.accounts[account.ID] = *account
	return nil
}

func (r *InMemoryAccountRepository) GetByID(id uint) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (r *InMemoryAccountRepository) GetByUserID(userID uint) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Account
	for id := uint(1); id <= r.nextID; id++ {
		if a, ok := r.accounts[id]; ok && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryAccountRepository) Update(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return ErrAccountNotFound
	}
	r.accounts[account.ID] = *account
	return nil
}

// ExecuteInTransaction runs fn against the same store. Callers serialize
// conflicting mutations through the per-account locks, so the writes inside
// fn are already atomic with respect to other engine operations.
func (r *InMemoryAccountRepository) ExecuteInTransaction(fn func(AccountRepository) error) error {
	return fn(r)
}

// InMemoryUserRepository is a map-backed UserRepository for tests.
type InMemoryUserRepository struct {
	mu       sync.RWMutex
	nextID   uint
	users    map[uint]models.User
	accounts *InMemoryAccountRepository
}

// NewInMemoryUserRepository ties the user store to an account store so List
// and GetByID can return users with their accounts attached.
func NewInMemoryUserRepository(accounts *InMemoryAccountRepository) *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[uint]models.User), accounts: accounts}
}

func (r *InMemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	user, ok := r.users[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	if r.accounts != nil {
		accounts, err := r.accounts.GetByUserID(user.ID)
		if err != nil {
			return nil, err
		}
		user.Accounts = accounts
	}
	return &user, nil
}

func (r *InMemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) List() ([]models.User, error) {
	r.mu.RLock()
	ids := make([]uint, 0, len(r.users))
	for id := uint(1); id <= r.nextID; id++ {
		if _, ok := r.users[id]; ok {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	return out, nil
}
