package auth

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore tracks issued token ids so a single token can be revoked at
// logout before its expiry.
type TokenStore interface {
	Save(ctx context.Context, jti string, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

const tokenKeyPrefix = "auth:token:"

// ------------------------------
// Redis-backed store
// ------------------------------

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(addr, password string, db int) *RedisTokenStore {
	return &RedisTokenStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *RedisTokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisTokenStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKeyPrefix+jti, "1", ttl).Err()
}

func (s *RedisTokenStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, tokenKeyPrefix+jti).Err()
}

// ------------------------------
// In-memory store
// ------------------------------

// MemoryTokenStore backs single-instance deployments without Redis, and
// the test suite.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: map[string]time.Time{}}
}

func (s *MemoryTokenStore) Save(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Exists(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(s.tokens, jti)
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, jti)
	return nil
}
