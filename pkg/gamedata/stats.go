// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package gamedata

import (
	"context"
	"fmt"
	"math"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Op is a stat update operation.
type Op string

const (
	OpSet       Op = "set"
	OpAdd       Op = "add"
	OpIncrement Op = "increment" // alias of OpAdd
	OpMax       Op = "max"
)

// ParseOp converts an operation name into an Op.
func ParseOp(name string) (Op, error) {
	switch op := Op(name); op {
	case OpSet, OpAdd, OpIncrement, OpMax:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

// StatUpdate is one entry of a batch update.
type StatUpdate struct {
	Key   profile.StatKey
	Value float64
	Op    Op
}

// ApplyStat applies one operation to a profile in place. It is exported for
// callers composing stat changes inside an Update callback.
func ApplyStat(p *profile.PlayerProfile, key profile.StatKey, value float64, op Op) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v for %s", ErrInvalidValue, value, key)
	}

	current, ok := p.Stats.Get(key)
	if !ok {
		return fmt.Errorf("%w: %q", profile.ErrUnknownStat, key.String())
	}

	switch op {
	case OpSet:
		current = value
	case OpAdd, OpIncrement:
		current += value
	case OpMax:
		if value > current {
			current = value
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}

	return p.Stats.Set(key, current)
}

// UpdateStat applies op to the stat and saves immediately.
func (g *GameData) UpdateStat(ctx context.Context, key profile.StatKey, value float64, op Op) error {
	return g.Update(ctx, func(p *profile.PlayerProfile) error {
		return ApplyStat(p, key, value, op)
	})
}

// UpdateStatPath is UpdateStat addressed by a dot path such as
// "gitSurvivor.enemiesKilled" and an operation name.
func (g *GameData) UpdateStatPath(ctx context.Context, path string, value float64, opName string) error {
	key, err := profile.ParseStatKey(path)
	if err != nil {
		return err
	}
	op, err := ParseOp(opName)
	if err != nil {
		return err
	}
	return g.UpdateStat(ctx, key, value, op)
}

// UpdateStats applies a batch of updates with a single save. Either every
// update is applied or none is.
func (g *GameData) UpdateStats(ctx context.Context, updates []StatUpdate) error {
	return g.Update(ctx, func(p *profile.PlayerProfile) error {
		for _, u := range updates {
			if err := ApplyStat(p, u.Key, u.Value, u.Op); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetStat returns the stat value, or 0 for keys outside the schema.
func (g *GameData) GetStat(key profile.StatKey) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, _ := g.data.Stats.Get(key)
	return v
}

// GetStatPath returns the stat at a dot path, or 0 if the path is unknown.
func (g *GameData) GetStatPath(path string) float64 {
	key, err := profile.ParseStatKey(path)
	if err != nil {
		return 0
	}
	return g.GetStat(key)
}
