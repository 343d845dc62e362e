// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package pets implements companion selection, affection and unlocks.
package pets

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

var (
	ErrUnknownPet    = errors.New("invalid pet")
	ErrPetLocked     = errors.New("pet not unlocked")
	ErrInvalidAmount = errors.New("invalid feed amount")
)

// System manages the pet block of the profile owned by data.
type System struct {
	data *gamedata.GameData
}

// New creates a pet system over data.
func New(data *gamedata.GameData) *System {
	return &System{data: data}
}

// SelectPet makes an unlocked pet the active companion.
func (s *System) SelectPet(ctx context.Context, id string) (Pet, error) {
	pet, ok := Lookup(id)
	if !ok {
		return Pet{}, fmt.Errorf("%w: %q", ErrUnknownPet, id)
	}

	err := s.data.Update(ctx, func(p *profile.PlayerProfile) error {
		if !isUnlocked(p, id) {
			return fmt.Errorf("%w: %q", ErrPetLocked, id)
		}
		p.Pets.Selected = id
		return nil
	})
	if err != nil {
		return Pet{}, err
	}

	logrus.Infof("%s is now the active companion", pet.Name)
	return pet, nil
}

// UnlockPet adds id to the unlocked pets. It reports false when the pet was
// already unlocked.
func (s *System) UnlockPet(ctx context.Context, id string) (bool, error) {
	if _, ok := Lookup(id); !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPet, id)
	}

	var added bool
	err := s.data.Update(ctx, func(p *profile.PlayerProfile) error {
		added = unlock(p, id)
		return nil
	})
	if err != nil {
		return false, err
	}
	if added {
		metrics.PetsUnlockedTotal.WithLabelValues(id).Inc()
	}
	return added, nil
}

// IsUnlocked reports whether pet id is owned.
func (s *System) IsUnlocked(id string) bool {
	var ok bool
	s.data.View(func(p *profile.PlayerProfile) {
		ok = isUnlocked(p, id)
	})
	return ok
}

// CurrentPet returns the selected companion.
func (s *System) CurrentPet() (Pet, bool) {
	var id string
	s.data.View(func(p *profile.PlayerProfile) {
		id = p.Pets.Selected
	})
	return Lookup(id)
}

// Affection returns the affection of pet id.
func (s *System) Affection(id string) int {
	var v int
	s.data.View(func(p *profile.PlayerProfile) {
		v = p.Pets.Affection[id]
	})
	return v
}

// FeedPet raises the affection of an unlocked pet, capped at
// profile.MaxAffection, and returns the new affection.
func (s *System) FeedPet(ctx context.Context, id string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	var affection int
	err := s.data.Update(ctx, func(p *profile.PlayerProfile) error {
		if !isUnlocked(p, id) {
			return fmt.Errorf("%w: %q", ErrPetLocked, id)
		}
		affection = min(p.Pets.Affection[id]+amount, profile.MaxAffection)
		p.Pets.Affection[id] = affection
		p.Pets.Fed[id]++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affection, nil
}

// ActiveBonuses is the effect of the selected pet at its current affection.
type ActiveBonuses struct {
	Multipliers map[Bonus]float64
	Flags       map[Bonus]bool
}

// ActiveBonuses scales the selected pet's numeric bonuses by affection: a
// bonus b becomes 1 + (b-1) * (1 + affection/1000), so full affection adds
// a tenth to the bonus part.
func (s *System) ActiveBonuses() ActiveBonuses {
	out := ActiveBonuses{
		Multipliers: make(map[Bonus]float64),
		Flags:       make(map[Bonus]bool),
	}

	var (
		id        string
		affection int
	)
	s.data.View(func(p *profile.PlayerProfile) {
		id = p.Pets.Selected
		affection = p.Pets.Affection[id]
	})

	pet, ok := Lookup(id)
	if !ok {
		return out
	}
	scale := 1 + float64(affection)/1000
	for bonus, v := range pet.Multipliers {
		out.Multipliers[bonus] = 1 + (v-1)*scale
	}
	for _, bonus := range pet.Flags {
		out.Flags[bonus] = true
	}
	return out
}

// CheckUnlocks unlocks every locked pet whose requirement is met and returns
// the newly unlocked pets in catalog order. All unlocks share one save.
func (s *System) CheckUnlocks(ctx context.Context) ([]Pet, error) {
	var unlocked []Pet
	err := s.data.Update(ctx, func(p *profile.PlayerProfile) error {
		for _, pet := range catalog {
			if isUnlocked(p, pet.ID) || !pet.Requirement.Met(p) {
				continue
			}
			unlock(p, pet.ID)
			unlocked = append(unlocked, pet)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, pet := range unlocked {
		metrics.PetsUnlockedTotal.WithLabelValues(pet.ID).Inc()
		logrus.Infof("pet unlocked: %s (%s)", pet.ID, pet.Requirement)
	}
	return unlocked, nil
}

func isUnlocked(p *profile.PlayerProfile, id string) bool {
	for _, u := range p.Pets.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

func unlock(p *profile.PlayerProfile, id string) bool {
	if isUnlocked(p, id) {
		return false
	}
	p.Pets.Unlocked = append(p.Pets.Unlocked, id)
	p.Pets.Affection[id] = 0
	return true
}
