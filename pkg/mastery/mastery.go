// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package mastery implements per-mode leveling from 1 to 100 with rewards
// at fixed levels.
package mastery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// MaxLevel is the mastery level cap.
const MaxLevel = profile.MaxMasteryLevel

var (
	// ErrUnknownMode is returned for a mode outside the stat catalog.
	ErrUnknownMode = errors.New("unknown game mode")

	// ErrInvalidXP is returned for negative or non-finite XP amounts.
	ErrInvalidXP = errors.New("invalid xp amount")
)

// RequiredXP returns the XP needed to advance from level to level+1.
func RequiredXP(level int) int {
	return profile.RequiredXP(level)
}

// GrantedReward is a reward that was applied, with random picks resolved.
type GrantedReward struct {
	Level  int
	Reward Reward
}

// AddXPResult describes the outcome of AddXP.
type AddXPResult struct {
	Mode         profile.Mode
	NewLevel     int
	LevelsGained []int
	CurrentXP    float64
	RequiredXP   int
	Rewards      []GrantedReward
}

// Option configures a System.
type Option func(*System)

// WithRand sets the source of random reward picks.
func WithRand(r *rand.Rand) Option {
	return func(s *System) {
		if r != nil {
			s.rng = r
		}
	}
}

// System applies mastery XP through GameData.
type System struct {
	data *gamedata.GameData
	// rng is only used inside GameData.Update, which serializes access.
	rng *rand.Rand
}

// New creates a mastery system over data.
func New(data *gamedata.GameData, opts ...Option) *System {
	now := uint64(time.Now().UnixNano())
	s := &System{
		data: data,
		rng:  rand.New(rand.NewPCG(now, now>>1|1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddXP adds XP to mode and folds it into as many level-ups as it covers.
// Each level gained dispatches its reward in the same save.
func (s *System) AddXP(ctx context.Context, mode profile.Mode, amount float64) (*AddXPResult, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXP, amount)
	}

	result := &AddXPResult{Mode: mode}
	err := s.data.Update(ctx, func(p *profile.PlayerProfile) error {
		m := p.MasteryOf(mode)
		m.XP += amount

		for m.Level < MaxLevel {
			required := float64(RequiredXP(m.Level))
			if m.XP < required {
				break
			}
			m.XP -= required
			m.Level++
			result.LevelsGained = append(result.LevelsGained, m.Level)

			if granted := s.grant(p, mode, m.Level); granted != nil {
				result.Rewards = append(result.Rewards, *granted)
			}
		}
		if m.Level >= MaxLevel {
			m.Level = MaxLevel
			m.XP = 0
		}

		p.Mastery[mode] = m
		result.NewLevel = m.Level
		result.CurrentXP = m.XP
		result.RequiredXP = RequiredXP(m.Level)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if n := len(result.LevelsGained); n > 0 {
		metrics.MasteryLevelUpsTotal.WithLabelValues(string(mode)).Add(float64(n))
		logrus.Infof("%s mastery reached level %d (+%d)", mode, result.NewLevel, n)
	}
	return result, nil
}

// grant applies the reward of level, resolving random picks.
func (s *System) grant(p *profile.PlayerProfile, mode profile.Mode, level int) *GrantedReward {
	reward, ok := RewardFor(mode, level)
	if !ok {
		return nil
	}

	switch r := reward.(type) {
	case Coins:
		p.Stats.TotalScore += float64(r.Amount)
	case Cosmetic:
		if r.ID == "" {
			r.ID = s.pick(cosmeticPool(r.Category))
		}
		if _, err := p.Customization.Unlock(r.Category, r.ID); err != nil {
			logrus.Warnf("mastery reward %s not applied: %v", r, err)
		}
		reward = r
	case Powerup:
		if r.ID == "" {
			r.ID = s.pick(powerupPool)
		}
		p.UnlockPowerup(r.ID)
		reward = r
	case Title:
		p.AddTitle(r.ID)
	}

	logrus.Debugf("%s mastery level %d reward: %s", mode, level, reward)
	return &GrantedReward{Level: level, Reward: reward}
}

func (s *System) pick(pool []string) string {
	return pool[s.rng.IntN(len(pool))]
}

// NextReward is the closest upcoming reward.
type NextReward struct {
	Level      int
	LevelsAway int
	Reward     Reward
}

// Info is a read-only view of one mode's mastery.
type Info struct {
	Mode       profile.Mode
	Level      int
	CurrentXP  float64
	RequiredXP int
	Progress   float64 // percent toward the next level
	NextReward *NextReward
}

// Info returns the mastery view of mode.
func (s *System) Info(mode profile.Mode) (Info, error) {
	if !mode.Valid() {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	var m profile.MasteryProgress
	s.data.View(func(p *profile.PlayerProfile) {
		m = p.MasteryOf(mode)
	})
	return infoFor(mode, m), nil
}

// AllInfo returns the mastery view of every mode.
func (s *System) AllInfo() map[profile.Mode]Info {
	out := make(map[profile.Mode]Info)
	s.data.View(func(p *profile.PlayerProfile) {
		for _, mode := range profile.Modes() {
			out[mode] = infoFor(mode, p.MasteryOf(mode))
		}
	})
	return out
}

func infoFor(mode profile.Mode, m profile.MasteryProgress) Info {
	required := RequiredXP(m.Level)
	info := Info{
		Mode:       mode,
		Level:      m.Level,
		CurrentXP:  m.XP,
		RequiredXP: required,
		Progress:   m.XP / float64(required) * 100,
		NextReward: nextReward(mode, m.Level),
	}
	return info
}

func nextReward(mode profile.Mode, level int) *NextReward {
	for _, l := range rewardLevels {
		if l > level {
			reward, _ := RewardFor(mode, l)
			return &NextReward{Level: l, LevelsAway: l - level, Reward: reward}
		}
	}
	return nil
}

// TotalLevel sums mastery levels across all modes.
func (s *System) TotalLevel() int {
	var total int
	s.data.View(func(p *profile.PlayerProfile) {
		total = p.TotalMasteryLevel()
	})
	return total
}

// Rank is a named tier of total mastery.
type Rank struct {
	Title string
	Color string
}

var ranks = []struct {
	min  int
	rank Rank
}{
	{900, Rank{Title: "Legendary Developer", Color: "#FFD700"}},
	{700, Rank{Title: "Elite Programmer", Color: "#FF00FF"}},
	{500, Rank{Title: "Senior Engineer", Color: "#00FFFF"}},
	{300, Rank{Title: "Mid-Level Developer", Color: "#00FF00"}},
	{100, Rank{Title: "Junior Developer", Color: "#FFFF00"}},
	{0, Rank{Title: "Intern", Color: "#FFFFFF"}},
}

// RankFor maps a total mastery level to its rank.
func RankFor(total int) Rank {
	for _, r := range ranks {
		if total >= r.min {
			return r.rank
		}
	}
	return ranks[len(ranks)-1].rank
}

// Rank returns the player's mastery rank.
func (s *System) Rank() Rank {
	return RankFor(s.TotalLevel())
}
