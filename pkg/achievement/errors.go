package achievement

import "errors"

var (
	// ErrUnknownAchievement indicates a rule targets an id outside the catalog
	ErrUnknownAchievement = errors.New("unknown achievement")

	// ErrUnknownRuleType indicates no factory is registered for a rule type
	ErrUnknownRuleType = errors.New("unknown rule type")

	// ErrInvalidRuleConfig indicates a rule is missing or has malformed parameters
	ErrInvalidRuleConfig = errors.New("invalid rule configuration")
)
