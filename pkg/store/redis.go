// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// RedisClientConfig configures the connection made by NewRedisClient.
type RedisClientConfig struct {
	Host       string
	Port       string
	Password   string
	MaxRetries int
	RetryDelay time.Duration
}

// NewRedisClient connects to Redis, retrying the initial ping with exponential backoff.
func NewRedisClient(ctx context.Context, cfg RedisClientConfig) (*redis.Client, error) {
	addr := cfg.Host + ":" + cfg.Port
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	if cfg.RetryDelay > 0 {
		b.InitialInterval = cfg.RetryDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	attempt := 0
	err := backoff.Retry(
		func() error {
			attempt++
			if _, err := client.Ping(ctx).Result(); err != nil {
				logrus.Warnf("Redis connection failed (attempt %d): %v, retrying...", attempt, err)
				return err
			}
			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", addr, attempt, err)
	}

	logrus.Infof("connected to Redis at %s (attempt %d)", addr, attempt)
	return client, nil
}

// RedisStoreConfig configures RedisStore.
type RedisStoreConfig struct {
	// Key is the Redis key holding the document. Defaults to DefaultKey.
	Key string
	// TTL expires the document after the last save. Zero keeps it forever.
	TTL time.Duration
}

// RedisStore keeps the profile document as one JSON string value.
type RedisStore struct {
	client *redis.Client
	cfg    RedisStoreConfig
}

// NewRedisStore creates a Redis-backed profile store.
func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	return &RedisStore{
		client: client,
		cfg:    cfg,
	}
}

// GetProfile retrieves the profile, or a default profile when none is stored.
func (r *RedisStore) GetProfile(ctx context.Context) (*profile.PlayerProfile, error) {
	data, err := r.client.Get(ctx, r.cfg.Key).Bytes()
	if err == redis.Nil {
		logrus.Debugf("no profile stored under %s, returning defaults", r.cfg.Key)
		return profile.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p, err := decodeProfile(data)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("retrieved profile from %s", r.cfg.Key)
	return p, nil
}

// SaveProfile writes the whole document with a single SET.
func (r *RedisStore) SaveProfile(ctx context.Context, p *profile.PlayerProfile) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.cfg.Key, data, r.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set profile: %w", err)
	}

	logrus.Debugf("saved profile to %s (ttl %v)", r.cfg.Key, r.cfg.TTL)
	return nil
}

// DeleteProfile removes the stored document.
func (r *RedisStore) DeleteProfile(ctx context.Context) error {
	if err := r.client.Del(ctx, r.cfg.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	logrus.Infof("deleted profile %s", r.cfg.Key)
	return nil
}

// Ping checks the Redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
