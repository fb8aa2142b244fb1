package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps tokens under "session:<sid>" with the token's TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func key(sid string) string { return "session:" + sid }

func (s *RedisStore) Get(ctx context.Context, sid string) (string, error) {
	tok, err := s.rdb.Get(ctx, key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	return tok, err
}

func (s *RedisStore) Put(ctx context.Context, sid, token string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = time.Second
	}
	return s.rdb.Set(ctx, key(sid), token, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
