// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/internal/config"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

// Storage is an opened profile backend.
type Storage interface {
	store.Store
	store.Pinger
	Close() error
}

// InitStorage opens the backend selected by STORAGE_BACKEND.
//
// Redis connects with retry and keeps the document under PROFILE_KEY with an
// optional TTL. SQLite opens (and creates) the database file at SQLITE_PATH.
func InitStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := store.NewRedisClient(ctx, store.RedisClientConfig{
			Host:       cfg.RedisHost,
			Port:       cfg.RedisPort,
			Password:   cfg.RedisPassword,
			MaxRetries: cfg.RedisMaxRetries,
			RetryDelay: cfg.RedisRetryDelay(),
		})
		if err != nil {
			return nil, err
		}
		logrus.Infof("using redis profile storage (key %s)", cfg.ProfileKey)
		return store.NewRedisStore(client, store.RedisStoreConfig{
			Key: cfg.ProfileKey,
			TTL: cfg.ProfileTTL(),
		}), nil

	case config.BackendSQLite:
		st, err := store.OpenSQLite(cfg.SQLitePath, cfg.ProfileKey)
		if err != nil {
			return nil, err
		}
		logrus.Infof("using sqlite profile storage at %s", cfg.SQLitePath)
		return st, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
