// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package prestige implements the reset-for-permanent-bonus economy: a
// player trades accumulated score for tokens and spends tokens on perks.
package prestige

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/AccelByte/extend-gitgame-progression/pkg/common"
	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// ScorePerLevel is the cumulative score needed per prestige level, and the
// score converted into one token.
const ScorePerLevel = 10000

// RequiredScore returns the totalScore needed to prestige from level.
func RequiredScore(level int) float64 {
	return float64(level+1) * ScorePerLevel
}

// TokensFor returns the tokens awarded for prestiging with totalScore at level.
func TokensFor(totalScore float64, level int) int {
	return int(math.Floor(totalScore/ScorePerLevel)) + level
}

// System operates on the prestige block of the profile owned by data.
type System struct {
	data *gamedata.GameData
}

// New creates a prestige system over data.
func New(data *gamedata.GameData) *System {
	return &System{data: data}
}

// Result describes a successful prestige.
type Result struct {
	Level        int
	TokensEarned int
	TotalTokens  int
	Message      string
}

// PurchaseResult describes a successful perk purchase.
type PurchaseResult struct {
	Perk            Perk
	Level           int
	RemainingTokens int
	Message         string
}

// CanPrestige reports whether the current score reaches the next threshold.
func (s *System) CanPrestige() bool {
	var ok bool
	s.data.View(func(p *profile.PlayerProfile) {
		ok = eligible(p)
	})
	return ok
}

// NextPrestigeTokens returns the tokens a prestige would award right now.
func (s *System) NextPrestigeTokens() int {
	var tokens int
	s.data.View(func(p *profile.PlayerProfile) {
		tokens = TokensFor(p.Stats.TotalScore, p.Prestige.Level)
	})
	return tokens
}

func eligible(p *profile.PlayerProfile) bool {
	return p.Stats.TotalScore >= RequiredScore(p.Prestige.Level)
}

// Prestige converts the current run into tokens and resets gameplay stats.
// Everything outside stats and the prestige block is left as is. The reset
// is a single GameData update, so readers never see it half applied.
func (s *System) Prestige(ctx context.Context) (*Result, error) {
	scope := common.StartScope(ctx, "Prestige.Prestige")
	defer scope.Finish()

	var result *Result
	err := s.data.Update(scope.Ctx, func(p *profile.PlayerProfile) error {
		if !eligible(p) {
			return &Rejection{Reason: ErrNotEligible, Message: "Not enough score to prestige!"}
		}

		earned := TokensFor(p.Stats.TotalScore, p.Prestige.Level)

		p.Prestige.LifetimeScore += p.Stats.TotalScore
		p.Prestige.TotalRuns++
		p.Prestige.Level++
		p.Prestige.Tokens += earned
		p.Stats = profile.NewStats()

		result = &Result{
			Level:        p.Prestige.Level,
			TokensEarned: earned,
			TotalTokens:  p.Prestige.Tokens,
			Message:      fmt.Sprintf("Prestige Level %d!", p.Prestige.Level),
		}
		return nil
	})
	if err != nil {
		scope.Log.Infof("prestige rejected: %v", err)
		return nil, err
	}

	metrics.PrestigesTotal.Inc()
	scope.SetAttributes("prestige.level", result.Level)
	scope.Log.Infof("prestiged to level %d, earned %d tokens", result.Level, result.TokensEarned)
	return result, nil
}

// PurchasePerk spends tokens on one level of perk id. Rejections leave the
// profile untouched and are returned as *Rejection.
func (s *System) PurchasePerk(ctx context.Context, id string) (*PurchaseResult, error) {
	scope := common.StartScope(ctx, "Prestige.PurchasePerk")
	defer scope.Finish()
	scope.SetAttributes("perk.id", id)

	perk, ok := LookupPerk(id)
	if !ok {
		metrics.PerkPurchasesTotal.WithLabelValues("unknown", outcome(ErrUnknownPerk)).Inc()
		return nil, &Rejection{Reason: ErrUnknownPerk, PerkID: id, Message: "Invalid perk!"}
	}

	var result *PurchaseResult
	err := s.data.Update(scope.Ctx, func(p *profile.PlayerProfile) error {
		if err := checkPurchase(p, perk); err != nil {
			return err
		}

		p.Prestige.Tokens -= perk.Cost
		level := addPerkLevel(p, perk.ID)

		result = &PurchaseResult{
			Perk:            perk,
			Level:           level,
			RemainingTokens: p.Prestige.Tokens,
			Message:         fmt.Sprintf("Purchased %s!", perk.Name),
		}
		return nil
	})
	if err != nil {
		metrics.PerkPurchasesTotal.WithLabelValues(id, outcome(err)).Inc()
		var rejection *Rejection
		if !errors.As(err, &rejection) {
			scope.TraceError(err)
		}
		return nil, err
	}

	metrics.PerkPurchasesTotal.WithLabelValues(id, "success").Inc()
	scope.Log.Infof("purchased perk %s level %d, %d tokens left", id, result.Level, result.RemainingTokens)
	return result, nil
}

func checkPurchase(p *profile.PlayerProfile, perk Perk) error {
	if p.PerkLevel(perk.ID) >= perk.MaxLevel {
		return &Rejection{Reason: ErrPerkMaxed, PerkID: perk.ID, Message: "Perk already at max level!"}
	}

	for _, req := range perk.Requires {
		if p.PerkLevel(req) >= 1 {
			continue
		}
		name := req
		if r, ok := LookupPerk(req); ok {
			name = r.Name
		}
		return &Rejection{
			Reason:  ErrMissingPrerequisite,
			PerkID:  perk.ID,
			Message: fmt.Sprintf("Requires %s first!", name),
		}
	}

	if p.Prestige.Tokens < perk.Cost {
		return &Rejection{Reason: ErrInsufficientTokens, PerkID: perk.ID, Message: "Not enough prestige tokens!"}
	}
	return nil
}

func addPerkLevel(p *profile.PlayerProfile, id string) int {
	for i := range p.Prestige.Perks {
		if p.Prestige.Perks[i].ID == id {
			p.Prestige.Perks[i].Level++
			return p.Prestige.Perks[i].Level
		}
	}
	p.Prestige.Perks = append(p.Prestige.Perks, profile.PerkRecord{ID: id, Level: 1})
	return 1
}

// PerkLevel returns the owned level of perk id, 0 when not owned.
func (s *System) PerkLevel(id string) int {
	var level int
	s.data.View(func(p *profile.PlayerProfile) {
		level = p.PerkLevel(id)
	})
	return level
}

// HasPerk reports whether perk id is owned at any level.
func (s *System) HasPerk(id string) bool {
	return s.PerkLevel(id) > 0
}

// ActiveBonuses returns the aggregate effect of every owned perk.
func (s *System) ActiveBonuses() Bonuses {
	var b Bonuses
	s.data.View(func(p *profile.PlayerProfile) {
		b = Compute(p.Prestige.Perks)
	})
	return b
}

// Info is the read-only view used by the prestige screen.
type Info struct {
	Level              int
	Tokens             int
	TotalRuns          int
	LifetimeScore      float64
	CanPrestige        bool
	RequiredScore      float64
	NextPrestigeTokens int
	ActiveBonuses      Bonuses
	Perks              []profile.PerkRecord
}

// Info returns the prestige view.
func (s *System) Info() Info {
	var info Info
	s.data.View(func(p *profile.PlayerProfile) {
		st := p.Prestige
		info = Info{
			Level:              st.Level,
			Tokens:             st.Tokens,
			TotalRuns:          st.TotalRuns,
			LifetimeScore:      st.LifetimeScore,
			CanPrestige:        eligible(p),
			RequiredScore:      RequiredScore(st.Level),
			NextPrestigeTokens: TokensFor(p.Stats.TotalScore, st.Level),
			ActiveBonuses:      Compute(st.Perks),
			Perks:              append([]profile.PerkRecord(nil), st.Perks...),
		}
	})
	return info
}
