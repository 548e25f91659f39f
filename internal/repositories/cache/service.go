package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skybank/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Service wraps a Redis client with JSON (de)serialization and a default TTL.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, ttl: defaultTTL}
}

func accountKey(id uint) string {
	return fmt.Sprintf("account:%d", id)
}

// cachedAccount is the cache wire format. The API-facing Account model hides
// the owner id from JSON, but the cache must keep it for ownership checks.
type cachedAccount struct {
	ID       uint            `json:"id"`
	UserID   uint            `json:"user_id"`
	Currency models.Currency `json:"currency"`
	Balance  int64           `json:"balance"`
}

func (s *Service) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached account: %w", err)
	}
	var ca cachedAccount
	if err := json.Unmarshal(data, &ca); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached account: %w", err)
	}
	return &models.Account{ID: ca.ID, UserID: ca.UserID, Currency: ca.Currency, Balance: ca.Balance}, nil
}

func (s *Service) SetAccount(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(cachedAccount{
		ID:       account.ID,
		UserID:   account.UserID,
		Currency: account.Currency,
		Balance:  account.Balance,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	return s.client.Set(ctx, accountKey(account.ID), data, s.ttl).Err()
}

func (s *Service) DeleteAccount(ctx context.Context, id uint) error {
	return s.client.Del(ctx, accountKey(id)).Err()
}

func (s *Service) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *Service) Close() error {
	return s.client.Close()
}
