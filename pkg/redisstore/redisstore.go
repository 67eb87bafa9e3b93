// Package redisstore implements fiber.Storage on Redis so rate-limit counters are
// shared by every replica.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "customerapi:limiter:"

// opTimeout bounds each storage call; fiber.Storage carries no context.
const opTimeout = 2 * time.Second

// Store is a fiber.Storage backed by a Redis client.
type Store struct {
	client *redis.Client
	prefix string
}

var _ fiber.Storage = (*Store)(nil)

// Config holds Redis connection details.
type Config struct {
	URL    string
	Prefix string
}

// New parses cfg.URL, connects and pings the server.
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client, cfg.Prefix), nil
}

// NewWithClient wraps an existing client. An empty prefix uses the default.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *Store) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val under key. A zero exp keeps the key until deleted.
func (s *Store) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Set(ctx, s.key(key), val, exp).Err()
}

func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Del(ctx, s.key(key)).Err()
}

// Reset removes every key under the store prefix.
func (s *Store) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
