package achievement

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Config is the achievement rule file.
type Config struct {
	Rules []RuleConfig `yaml:"rules"`
}

// LoadConfig loads achievement rules from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses and validates rule YAML.
func ParseConfig(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rules: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule configuration: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	ruleIDs := make(map[string]bool)
	for _, rule := range c.Rules {
		if rule.ID == "" {
			return fmt.Errorf("%w: rule with empty ID found", ErrInvalidRuleConfig)
		}
		if ruleIDs[rule.ID] {
			return fmt.Errorf("%w: duplicate rule ID: %s", ErrInvalidRuleConfig, rule.ID)
		}
		ruleIDs[rule.ID] = true

		if rule.Type == "" {
			return fmt.Errorf("%w: rule %s has empty type", ErrInvalidRuleConfig, rule.ID)
		}
		if _, ok := factories[rule.Type]; !ok {
			return fmt.Errorf("%w: rule %s: %s", ErrUnknownRuleType, rule.ID, rule.Type)
		}
		if !Known(rule.Achievement) {
			return fmt.Errorf("%w: rule %s targets %q", ErrUnknownAchievement, rule.ID, rule.Achievement)
		}
		if rule.Type == TypeStatThreshold {
			if _, err := profile.ParseStatKey(rule.GetString("stat", "")); err != nil {
				return fmt.Errorf("%w: rule %s: %v", ErrInvalidRuleConfig, rule.ID, err)
			}
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
