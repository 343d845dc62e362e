// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Storage backends.
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Server
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"GitGameProgression"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage
	StorageBackend  string `env:"STORAGE_BACKEND" envDefault:"redis"`
	ProfileKey      string `env:"PROFILE_KEY" envDefault:"gitgame_data"`
	ProfileTTLHours int    `env:"PROFILE_TTL_HOURS" envDefault:"0"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"gitgame.db"`

	// Redis
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// Gameplay tuning
	ComboTimeoutMs       int     `env:"COMBO_TIMEOUT_MS" envDefault:"3000"`
	SessionXPRate        float64 `env:"SESSION_XP_RATE" envDefault:"0.1"`
	AchievementRulesPath string  `env:"ACHIEVEMENT_RULES_PATH"`

	// Telemetry
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}

// ProfileTTL returns the profile expiry, zero for none.
func (c *Config) ProfileTTL() time.Duration {
	return time.Duration(c.ProfileTTLHours) * time.Hour
}

// ComboTimeout returns the combo decay window.
func (c *Config) ComboTimeout() time.Duration {
	return time.Duration(c.ComboTimeoutMs) * time.Millisecond
}

// RedisRetryDelay returns the initial Redis connect retry interval.
func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}
