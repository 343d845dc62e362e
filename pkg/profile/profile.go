// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

import (
	"math"
)

// MaxMasteryLevel is the highest mastery level of a mode.
const MaxMasteryLevel = 100

// RequiredXP returns the XP needed to advance from level to level+1.
func RequiredXP(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.15, float64(level-1))))
}

// New returns a default profile with every invariant satisfied.
func New() *PlayerProfile {
	p := &PlayerProfile{
		Stats:        NewStats(),
		Achievements: []string{},
		UnlockedContent: UnlockedContent{
			Difficulties: []Difficulty{DifficultyNormal},
			Powerups:     []string{},
		},
		Settings: Settings{
			SoundEnabled: true,
			MusicEnabled: true,
			Difficulty:   DifficultyNormal,
		},
		Mastery: make(map[Mode]MasteryProgress, len(modeOrder)),
		Prestige: PrestigeState{
			Perks: []PerkRecord{},
		},
		Customization: NewCustomization(),
		Pets: PetState{
			Unlocked:  []string{DefaultPet},
			Selected:  DefaultPet,
			Fed:       make(map[string]int),
			Affection: map[string]int{DefaultPet: 0},
		},
		Titles:     []string{},
		Events:     make(map[string]bool),
		EasterEggs: make(map[string]bool),
	}
	for _, mode := range modeOrder {
		p.Mastery[mode] = MasteryProgress{Level: 1}
	}
	return p
}

// Normalize repairs a decoded or mutated profile so that every invariant of
// the document holds: all stat modes and counters present and non-negative,
// mastery levels in range with XP folded below the current requirement,
// unique perk records, selections that are members of their unlocked sets,
// and non-nil collections.
func (p *PlayerProfile) Normalize() {
	p.Stats.normalize()

	p.Achievements = dedupe(p.Achievements)
	p.Titles = dedupe(p.Titles)
	p.UnlockedContent.Powerups = dedupe(p.UnlockedContent.Powerups)

	difficulties := []Difficulty{DifficultyNormal}
	for _, d := range p.UnlockedContent.Difficulties {
		if d.Valid() && !containsDifficulty(difficulties, d) {
			difficulties = append(difficulties, d)
		}
	}
	p.UnlockedContent.Difficulties = difficulties

	if !p.Settings.Difficulty.Valid() {
		p.Settings.Difficulty = DifficultyNormal
	}

	p.normalizeMastery()
	p.normalizePrestige()
	p.Customization.normalize()
	p.normalizePets()

	if p.Events == nil {
		p.Events = make(map[string]bool)
	}
	if p.EasterEggs == nil {
		p.EasterEggs = make(map[string]bool)
	}
}

func (p *PlayerProfile) normalizeMastery() {
	if p.Mastery == nil {
		p.Mastery = make(map[Mode]MasteryProgress, len(modeOrder))
	}
	for mode := range p.Mastery {
		if !mode.Valid() {
			delete(p.Mastery, mode)
		}
	}
	for _, mode := range modeOrder {
		m, ok := p.Mastery[mode]
		if !ok {
			m = MasteryProgress{Level: 1}
		}
		if m.Level < 1 {
			m.Level = 1
		}
		if m.Level > MaxMasteryLevel {
			m.Level = MaxMasteryLevel
		}
		m.XP = sanitizeCounter(m.XP)
		for m.Level < MaxMasteryLevel && m.XP >= float64(RequiredXP(m.Level)) {
			m.XP -= float64(RequiredXP(m.Level))
			m.Level++
		}
		if m.Level == MaxMasteryLevel {
			m.XP = 0
		}
		p.Mastery[mode] = m
	}
}

func (p *PlayerProfile) normalizePrestige() {
	ps := &p.Prestige
	if ps.Level < 0 {
		ps.Level = 0
	}
	if ps.Tokens < 0 {
		ps.Tokens = 0
	}
	if ps.TotalRuns < 0 {
		ps.TotalRuns = 0
	}
	ps.LifetimeScore = sanitizeCounter(ps.LifetimeScore)

	perks := make([]PerkRecord, 0, len(ps.Perks))
	index := make(map[string]int, len(ps.Perks))
	for _, perk := range ps.Perks {
		if perk.ID == "" || perk.Level < 1 {
			continue
		}
		if i, seen := index[perk.ID]; seen {
			if perk.Level > perks[i].Level {
				perks[i].Level = perk.Level
			}
			continue
		}
		index[perk.ID] = len(perks)
		perks = append(perks, perk)
	}
	ps.Perks = perks
}

func (p *PlayerProfile) normalizePets() {
	pets := &p.Pets
	pets.Unlocked = dedupe(append([]string{DefaultPet}, pets.Unlocked...))
	if !contains(pets.Unlocked, pets.Selected) {
		pets.Selected = DefaultPet
	}
	if pets.Fed == nil {
		pets.Fed = make(map[string]int)
	}
	if pets.Affection == nil {
		pets.Affection = make(map[string]int)
	}
	for id, v := range pets.Affection {
		switch {
		case v < 0:
			pets.Affection[id] = 0
		case v > MaxAffection:
			pets.Affection[id] = MaxAffection
		}
	}
}

// HasAchievement reports whether id is in the unlocked set.
func (p *PlayerProfile) HasAchievement(id string) bool {
	return contains(p.Achievements, id)
}

// AddAchievement records id as unlocked. It returns false if it already was.
func (p *PlayerProfile) AddAchievement(id string) bool {
	if contains(p.Achievements, id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// AddTitle unlocks a title. It returns false if already unlocked.
func (p *PlayerProfile) AddTitle(id string) bool {
	if contains(p.Titles, id) {
		return false
	}
	p.Titles = append(p.Titles, id)
	return true
}

// UnlockPowerup unlocks a power-up. It returns false if already unlocked.
func (p *PlayerProfile) UnlockPowerup(id string) bool {
	if contains(p.UnlockedContent.Powerups, id) {
		return false
	}
	p.UnlockedContent.Powerups = append(p.UnlockedContent.Powerups, id)
	return true
}

// UnlockDifficulty makes d selectable. It returns false if already unlocked.
func (p *PlayerProfile) UnlockDifficulty(d Difficulty) bool {
	if containsDifficulty(p.UnlockedContent.Difficulties, d) {
		return false
	}
	p.UnlockedContent.Difficulties = append(p.UnlockedContent.Difficulties, d)
	return true
}

// MasteryOf returns the mastery progress of mode, defaulting to level 1.
func (p *PlayerProfile) MasteryOf(mode Mode) MasteryProgress {
	if m, ok := p.Mastery[mode]; ok {
		return m
	}
	return MasteryProgress{Level: 1}
}

// TotalMasteryLevel sums mastery levels over all modes.
func (p *PlayerProfile) TotalMasteryLevel() int {
	total := 0
	for _, mode := range modeOrder {
		total += p.MasteryOf(mode).Level
	}
	return total
}

// HighestMasteryLevel returns the best mastery level of any mode.
func (p *PlayerProfile) HighestMasteryLevel() int {
	best := 1
	for _, mode := range modeOrder {
		if l := p.MasteryOf(mode).Level; l > best {
			best = l
		}
	}
	return best
}

// PerkLevel returns the owned level of a perk, 0 if not owned.
func (p *PlayerProfile) PerkLevel(id string) int {
	for _, perk := range p.Prestige.Perks {
		if perk.ID == id {
			return perk.Level
		}
	}
	return 0
}

// Clone returns a deep copy of the profile.
func (p *PlayerProfile) Clone() *PlayerProfile {
	out := &PlayerProfile{
		Stats:        p.Stats.clone(),
		Achievements: cloneStrings(p.Achievements),
		UnlockedContent: UnlockedContent{
			Difficulties: append([]Difficulty{}, p.UnlockedContent.Difficulties...),
			Powerups:     cloneStrings(p.UnlockedContent.Powerups),
		},
		Settings: p.Settings,
		Mastery:  make(map[Mode]MasteryProgress, len(p.Mastery)),
		Prestige: PrestigeState{
			Level:         p.Prestige.Level,
			Tokens:        p.Prestige.Tokens,
			Perks:         append([]PerkRecord{}, p.Prestige.Perks...),
			TotalRuns:     p.Prestige.TotalRuns,
			LifetimeScore: p.Prestige.LifetimeScore,
		},
		Customization: p.Customization.clone(),
		Pets: PetState{
			Unlocked:  cloneStrings(p.Pets.Unlocked),
			Selected:  p.Pets.Selected,
			Fed:       cloneIntMap(p.Pets.Fed),
			Affection: cloneIntMap(p.Pets.Affection),
		},
		Titles:     cloneStrings(p.Titles),
		Events:     cloneBoolMap(p.Events),
		EasterEggs: cloneBoolMap(p.EasterEggs),
	}
	for mode, m := range p.Mastery {
		out.Mastery[mode] = m
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsDifficulty(list []Difficulty, d Difficulty) bool {
	for _, item := range list {
		if item == d {
			return true
		}
	}
	return false
}

// dedupe removes empty and repeated ids, keeping first occurrence order.
func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, item := range list {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func cloneStrings(list []string) []string {
	return append([]string{}, list...)
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
