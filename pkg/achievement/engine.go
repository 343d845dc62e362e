package achievement

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Engine evaluates a profile against registered rules.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new rule evaluation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// NewDefaultEngine builds an engine with the default threshold rules.
func NewDefaultEngine() (*Engine, error) {
	registry := NewRegistry()
	if err := RegisterRules(registry, DefaultRules()); err != nil {
		return nil, err
	}
	return NewEngine(registry), nil
}

// Evaluate returns the ids of achievements the profile qualifies for and has
// not unlocked yet, in catalog order.
func (e *Engine) Evaluate(ctx context.Context, p *profile.PlayerProfile) ([]string, error) {
	if p == nil {
		return nil, nil
	}

	rules := e.registry.GetAll()
	if len(rules) == 0 {
		logrus.Debugf("no achievement rules registered")
		return nil, nil
	}

	seen := make(map[string]bool)
	var matched []string

	for _, rule := range rules {
		id := rule.AchievementID()
		if seen[id] || p.HasAchievement(id) {
			continue
		}

		ok, err := rule.Evaluate(ctx, p)
		if err != nil {
			logrus.Errorf("achievement rule %s evaluation failed: %v", rule.ID(), err)
			// Continue evaluating other rules even if one fails
			continue
		}

		if ok {
			logrus.Debugf("achievement rule %s matched %s", rule.ID(), id)
			seen[id] = true
			matched = append(matched, id)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return order(matched[i]) < order(matched[j])
	})

	return matched, nil
}

// GetRegistry returns the rule registry used by this engine.
func (e *Engine) GetRegistry() *Registry {
	return e.registry
}
