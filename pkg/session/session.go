// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package session records the end of a game: stats, mastery XP, achievement
// and pet unlocks, in the order a game-over screen expects them.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AccelByte/extend-gitgame-progression/pkg/achievement"
	"github.com/AccelByte/extend-gitgame-progression/pkg/combo"
	"github.com/AccelByte/extend-gitgame-progression/pkg/common"
	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/mastery"
	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
	"github.com/AccelByte/extend-gitgame-progression/pkg/pets"
	"github.com/AccelByte/extend-gitgame-progression/pkg/prestige"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// DefaultXPRate is the share of a game's score converted into mastery XP.
const DefaultXPRate = 0.1

var (
	ErrUnknownMode  = errors.New("unknown game mode")
	ErrInvalidScore = errors.New("invalid score")
)

// GameResult is what a scene reports when a game ends.
type GameResult struct {
	Mode     profile.Mode
	Score    float64
	Duration time.Duration
	// Updates are mode-specific counters, applied in the same batch as the
	// standard game-over counters.
	Updates []gamedata.StatUpdate
}

// Summary is everything a game-over screen shows.
type Summary struct {
	XP              int
	Mastery         *mastery.AddXPResult
	NewAchievements []achievement.Definition
	NewPets         []pets.Pet
	CanPrestige     bool
}

// Config holds recorder tuning.
type Config struct {
	XPRate       float64
	ComboTimeout time.Duration
}

// Recorder ties the progression systems together for game-over handling.
type Recorder struct {
	data     *gamedata.GameData
	mastery  *mastery.System
	prestige *prestige.System
	pets     *pets.System
	cfg      Config
}

// NewRecorder creates a recorder. Zero config values take the defaults.
func NewRecorder(data *gamedata.GameData, m *mastery.System, p *prestige.System, ps *pets.System, cfg Config) *Recorder {
	if cfg.XPRate <= 0 {
		cfg.XPRate = DefaultXPRate
	}
	if cfg.ComboTimeout <= 0 {
		cfg.ComboTimeout = combo.DefaultTimeout
	}
	return &Recorder{
		data:     data,
		mastery:  m,
		prestige: p,
		pets:     ps,
		cfg:      cfg,
	}
}

// NewCombo starts the combo tracker of a new game.
func (r *Recorder) NewCombo(listeners ...combo.Listener) *combo.System {
	opts := []combo.Option{combo.WithTimeout(r.cfg.ComboTimeout)}
	for _, l := range listeners {
		opts = append(opts, combo.WithListener(l))
	}
	return combo.New(opts...)
}

// XPFor converts a score into mastery XP with the given prestige multiplier.
func (r *Recorder) XPFor(score, xpMultiplier float64) int {
	return int(math.Floor(score * r.cfg.XPRate * xpMultiplier))
}

// RecordGame applies a finished game. Stats are written first as one batch;
// when that fails nothing else is applied.
func (r *Recorder) RecordGame(ctx context.Context, result GameResult) (*Summary, error) {
	scope := common.StartScope(ctx, "Session.RecordGame")
	defer scope.Finish()
	scope.SetAttributes("game.mode", string(result.Mode))

	if !result.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, result.Mode)
	}
	if result.Score < 0 || math.IsNaN(result.Score) || math.IsInf(result.Score, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScore, result.Score)
	}

	if err := r.data.UpdateStats(scope.Ctx, gameOverUpdates(result)); err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("failed to record stats: %w", err)
	}
	metrics.GamesRecordedTotal.WithLabelValues(string(result.Mode)).Inc()

	summary := &Summary{
		XP: r.XPFor(result.Score, r.prestige.ActiveBonuses().XPMultiplier),
	}

	xp, err := r.mastery.AddXP(scope.Ctx, result.Mode, float64(summary.XP))
	if err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("failed to add mastery xp: %w", err)
	}
	summary.Mastery = xp

	summary.NewAchievements = r.data.CheckAchievements(scope.Ctx)

	newPets, err := r.pets.CheckUnlocks(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("failed to check pet unlocks: %w", err)
	}
	summary.NewPets = newPets
	summary.CanPrestige = r.prestige.CanPrestige()

	scope.Log.Infof("recorded %s game: score=%v xp=%d level=%d achievements=%d pets=%d",
		result.Mode, result.Score, summary.XP, xp.NewLevel, len(summary.NewAchievements), len(newPets))
	return summary, nil
}

func gameOverUpdates(result GameResult) []gamedata.StatUpdate {
	updates := []gamedata.StatUpdate{
		{Key: profile.Global(profile.CounterGamesPlayed), Value: 1, Op: gamedata.OpAdd},
		{Key: profile.Global(profile.CounterTotalScore), Value: result.Score, Op: gamedata.OpAdd},
		{Key: profile.Global(profile.CounterTotalTimePlayed), Value: result.Duration.Seconds(), Op: gamedata.OpAdd},
	}
	if result.Mode.HasCounter(profile.CounterGamesPlayed) {
		updates = append(updates, gamedata.StatUpdate{
			Key: profile.ModeStat(result.Mode, profile.CounterGamesPlayed), Value: 1, Op: gamedata.OpAdd,
		})
	}
	if result.Mode.HasCounter(profile.CounterHighScore) {
		updates = append(updates, gamedata.StatUpdate{
			Key: profile.ModeStat(result.Mode, profile.CounterHighScore), Value: result.Score, Op: gamedata.OpMax,
		})
	}
	return append(updates, result.Updates...)
}
