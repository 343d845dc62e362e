package achievement

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RuleFactory is a function that creates a rule from a configuration.
type RuleFactory func(config RuleConfig) (Rule, error)

// factories stores registered rule factories by type
var factories = make(map[string]RuleFactory)

func init() {
	RegisterRuleType(TypeStatThreshold, NewStatThresholdRule)
}

// RegisterRuleType registers a factory function for a rule type.
func RegisterRuleType(ruleType string, factory RuleFactory) {
	factories[ruleType] = factory
	logrus.Debugf("registered achievement rule type: %s", ruleType)
}

// CreateRule creates a rule instance based on the configuration.
// Disabled rules yield a nil rule and no error.
func CreateRule(config RuleConfig) (Rule, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled achievement rule: %s", config.ID)
		return nil, nil
	}

	if !Known(config.Achievement) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAchievement, config.Achievement)
	}

	factory, exists := factories[config.Type]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleType, config.Type)
	}

	return factory(config)
}

// CreateRules creates multiple rule instances from a list of configurations.
// Returns all successfully created rules and any errors encountered.
func CreateRules(configs []RuleConfig) ([]Rule, []error) {
	var rules []Rule
	var errs []error

	for _, config := range configs {
		rule, err := CreateRule(config)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create rule %s: %w", config.ID, err))
			continue
		}

		if rule != nil {
			rules = append(rules, rule)
		}
	}

	return rules, errs
}

// RegisterRules creates and registers rules with the provided registry.
// Any creation error fails the whole set so a broken config never silently
// drops achievements.
func RegisterRules(registry *Registry, configs []RuleConfig) error {
	rules, errs := CreateRules(configs)
	if len(errs) > 0 {
		for _, err := range errs {
			logrus.Warnf("achievement rule creation error: %v", err)
		}
		return errs[0]
	}

	for _, rule := range rules {
		if err := registry.Register(rule); err != nil {
			return fmt.Errorf("failed to register rule %s: %w", rule.ID(), err)
		}
	}

	logrus.Infof("registered %d achievement rules", len(rules))
	return nil
}
