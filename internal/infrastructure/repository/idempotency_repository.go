package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
)

type redisIdempotencyRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisIdempotencyRepository stores idempotency keys in Redis. Expiry is
// delegated to the key TTL.
func NewRedisIdempotencyRepository(client *redis.Client, prefix string) domainRepo.IdempotencyRepository {
	return &redisIdempotencyRepository{client: client, prefix: prefix}
}

func (r *redisIdempotencyRepository) redisKey(key, terminalID string) string {
	return fmt.Sprintf("%s:idempotency:%s:%s", r.prefix, terminalID, key)
}

func (r *redisIdempotencyRepository) GetByKey(ctx context.Context, key string, terminalID string) (*entity.IdempotencyKey, error) {
	raw, err := r.client.Get(ctx, r.redisKey(key, terminalID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ikey entity.IdempotencyKey
	if err := json.Unmarshal([]byte(raw), &ikey); err != nil {
		return nil, fmt.Errorf("decode idempotency key: %w", err)
	}
	if ikey.IsExpired() {
		return nil, nil
	}
	return &ikey, nil
}

// Create keeps the first stored response when two requests race on one key.
func (r *redisIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	payload, err := json.Marshal(ikey)
	if err != nil {
		return err
	}
	ttl := time.Until(ikey.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.SetNX(ctx, r.redisKey(ikey.Key, ikey.TerminalID), payload, ttl).Err()
}

func (r *redisIdempotencyRepository) DeleteExpired(ctx context.Context) error {
	return nil
}

type memoryIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

// NewMemoryIdempotencyRepository is the fallback store used when no Redis
// address is configured.
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepository) GetByKey(ctx context.Context, key string, terminalID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[terminalID+":"+key]
	if !ok || ikey.IsExpired() {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := ikey.TerminalID + ":" + ikey.Key
	if existing, ok := r.keys[k]; ok && !existing.IsExpired() {
		return nil
	}
	r.keys[k] = *ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.keys {
		if v.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}
