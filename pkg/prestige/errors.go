package prestige

import "errors"

var (
	ErrNotEligible         = errors.New("not enough score to prestige")
	ErrUnknownPerk         = errors.New("unknown perk")
	ErrPerkMaxed           = errors.New("perk already at max level")
	ErrMissingPrerequisite = errors.New("missing prerequisite perk")
	ErrInsufficientTokens  = errors.New("not enough prestige tokens")
)

// Rejection is an expected negative outcome of a player action. Message is
// meant for display; Reason is one of the sentinel errors above.
type Rejection struct {
	Reason  error
	PerkID  string
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

// outcome is the metrics label of a rejection reason.
func outcome(err error) string {
	switch {
	case errors.Is(err, ErrUnknownPerk):
		return "unknown_perk"
	case errors.Is(err, ErrPerkMaxed):
		return "max_level"
	case errors.Is(err, ErrMissingPrerequisite):
		return "missing_prerequisite"
	case errors.Is(err, ErrInsufficientTokens):
		return "insufficient_tokens"
	default:
		return "error"
	}
}
