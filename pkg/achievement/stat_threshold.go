package achievement

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// TypeStatThreshold is the rule type for "stat >= threshold" conditions.
const TypeStatThreshold = "stat_threshold"

// StatThresholdRule matches when a stat reaches a threshold.
//
// Parameters:
//   - stat: dot path of the counter, e.g. "gitSurvivor.enemiesKilled"
//   - threshold: minimum value, inclusive
type StatThresholdRule struct {
	config    RuleConfig
	key       profile.StatKey
	threshold float64
}

// NewStatThresholdRule creates a StatThresholdRule from its configuration.
func NewStatThresholdRule(config RuleConfig) (Rule, error) {
	path := config.GetString("stat", "")
	if path == "" {
		return nil, fmt.Errorf("%w: rule %s has no stat", ErrInvalidRuleConfig, config.ID)
	}

	key, err := profile.ParseStatKey(path)
	if err != nil {
		return nil, fmt.Errorf("%w: rule %s: %v", ErrInvalidRuleConfig, config.ID, err)
	}

	threshold := config.GetFloat("threshold", -1)
	if threshold < 0 {
		return nil, fmt.Errorf("%w: rule %s needs a non-negative threshold", ErrInvalidRuleConfig, config.ID)
	}

	return &StatThresholdRule{
		config:    config,
		key:       key,
		threshold: threshold,
	}, nil
}

func (r *StatThresholdRule) ID() string            { return r.config.ID }
func (r *StatThresholdRule) AchievementID() string { return r.config.Achievement }
func (r *StatThresholdRule) Config() RuleConfig    { return r.config }

func (r *StatThresholdRule) Evaluate(_ context.Context, p *profile.PlayerProfile) (bool, error) {
	v, ok := p.Stats.Get(r.key)
	if !ok {
		return false, fmt.Errorf("stat %s not in schema", r.key)
	}
	return v >= r.threshold, nil
}

func thresholdRule(achievementID, stat string, threshold float64) RuleConfig {
	return RuleConfig{
		ID:          achievementID,
		Type:        TypeStatThreshold,
		Achievement: achievementID,
		Enabled:     true,
		Parameters: map[string]interface{}{
			"stat":      stat,
			"threshold": threshold,
		},
	}
}

// DefaultRules returns the built-in threshold rules. Catalog entries without a
// rule are event achievements unlocked directly by game modes.
func DefaultRules() []RuleConfig {
	return []RuleConfig{
		thresholdRule("first_blood", "gitSurvivor.enemiesKilled", 1),
		thresholdRule("survivor", "gitSurvivor.enemiesKilled", 100),
		thresholdRule("tower_master", "codeDefense.towersPlaced", 50),
		thresholdRule("pr_pro", "prRush.prsReviewed", 100),
		thresholdRule("perfect_review", "prRush.bestAccuracy", 100),
		thresholdRule("sprint_master", "devCommander.maxSprints", 10),
		thresholdRule("workaholic", "gamesPlayed", 50),
		thresholdRule("boss_slayer", "bossRush.bossesDefeated", 1),
	}
}
