package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisOpTimeout = 3 * time.Second

// RedisSnapshot keeps the cart under SnapshotKey in Redis, for deployments
// where the process has no writable disk. The value never expires; the cart
// lives until the session overwrites or drops it.
type RedisSnapshot struct {
	rdb *redis.Client
}

func NewRedisSnapshot(rdb *redis.Client) *RedisSnapshot {
	return &RedisSnapshot{rdb: rdb}
}

func (s *RedisSnapshot) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisSnapshot) Load(ctx context.Context) ([]Product, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, SnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cart []Product
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

func (s *RedisSnapshot) Save(ctx context.Context, cart []Product) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.rdb.Set(ctx, SnapshotKey, raw, 0).Err()
}
