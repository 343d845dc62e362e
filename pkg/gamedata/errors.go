package gamedata

import "errors"

var (
	// ErrUnknownOp is returned for a stat operation other than set, add, increment or max.
	ErrUnknownOp = errors.New("unknown stat operation")

	// ErrInvalidDifficulty is returned for a difficulty outside normal, hard and nightmare.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidValue is returned for NaN or infinite stat values.
	ErrInvalidValue = errors.New("invalid stat value")
)
