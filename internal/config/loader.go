// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs range and cross-field checks on the configuration.
func (c *Config) Validate() error {
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	switch c.StorageBackend {
	case BackendRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
		if c.RedisMaxRetries < 0 {
			return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be >= 0)", c.RedisMaxRetries)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND: %q (must be %s or %s)", c.StorageBackend, BackendRedis, BackendSQLite)
	}

	if c.ProfileKey == "" {
		return fmt.Errorf("PROFILE_KEY must not be empty")
	}
	if c.ProfileTTLHours < 0 {
		return fmt.Errorf("invalid PROFILE_TTL_HOURS: %d (must be >= 0)", c.ProfileTTLHours)
	}
	if c.ComboTimeoutMs <= 0 {
		return fmt.Errorf("invalid COMBO_TIMEOUT_MS: %d (must be > 0)", c.ComboTimeoutMs)
	}
	if c.SessionXPRate <= 0 {
		return fmt.Errorf("invalid SESSION_XP_RATE: %v (must be > 0)", c.SessionXPRate)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}
