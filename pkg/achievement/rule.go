package achievement

import (
	"context"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Rule decides whether a profile qualifies for one achievement.
// Rules are registered in a Registry and evaluated by the Engine.
type Rule interface {
	// ID returns unique rule identifier.
	ID() string

	// AchievementID returns the catalog id unlocked when the rule matches.
	AchievementID() string

	// Evaluate checks the profile against the rule condition.
	// Returns error only for unexpected failures, not mismatches.
	Evaluate(ctx context.Context, p *profile.PlayerProfile) (bool, error)

	// Config returns the rule's configuration.
	Config() RuleConfig
}

// RuleConfig is the base configuration for all rules.
// It is loaded from YAML or built from the default rule set.
type RuleConfig struct {
	ID          string                 `yaml:"id" json:"id"`
	Type        string                 `yaml:"type" json:"type"` // e.g. "stat_threshold"
	Achievement string                 `yaml:"achievement" json:"achievement"`
	Enabled     bool                   `yaml:"enabled" json:"enabled"`
	Parameters  map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// GetFloat retrieves a numeric parameter with a default.
// YAML integers are accepted as well as floats.
func (c *RuleConfig) GetFloat(key string, defaultValue float64) float64 {
	switch v := c.Parameters[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return defaultValue
}

// GetString retrieves a string parameter with a default.
func (c *RuleConfig) GetString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}
