package repositories

import (
	"context"

	"skybank/internal/models"
	"skybank/internal/repositories/cache"
)

// CacheRepository caches account snapshots on the read path. Every balance
// mutation must invalidate the touched accounts after commit; the durable
// store stays authoritative.
type CacheRepository interface {
	GetAccount(ctx context.Context, id uint) (*models.Account, error)
	SetAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id uint) error
}

// NoopCache satisfies CacheRepository without caching anything. Used in
// tests and when Redis is not configured.
type NoopCache struct{}

func (NoopCache) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	return nil, cache.ErrCacheMiss
}

func (NoopCache) SetAccount(ctx context.Context, account *models.Account) error { return nil }

func (NoopCache) DeleteAccount(ctx context.Context, id uint) error { return nil }
