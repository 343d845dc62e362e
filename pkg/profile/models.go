// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

// PlayerProfile is the persisted progression document of a player.
//
// A profile obtained from GameData is either the live document (only inside
// GameData's update callbacks) or a clone; mutating a clone never persists.
type PlayerProfile struct {
	Stats           Stats                    `json:"stats"`
	Achievements    []string                 `json:"achievements"`
	UnlockedContent UnlockedContent          `json:"unlockedContent"`
	Settings        Settings                 `json:"settings"`
	Mastery         map[Mode]MasteryProgress `json:"mastery"`
	Prestige        PrestigeState            `json:"prestige"`
	Customization   Customization            `json:"customization"`
	Pets            PetState                 `json:"pets"`
	Titles          []string                 `json:"titles"`
	Events          map[string]bool          `json:"events"`
	EasterEggs      map[string]bool          `json:"easterEggs"`
}

// Difficulty is the global difficulty setting.
type Difficulty string

const (
	DifficultyNormal    Difficulty = "normal"
	DifficultyHard      Difficulty = "hard"
	DifficultyNightmare Difficulty = "nightmare"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyNormal, DifficultyHard, DifficultyNightmare:
		return true
	}
	return false
}

// Settings holds player toggles.
type Settings struct {
	SoundEnabled bool       `json:"soundEnabled"`
	MusicEnabled bool       `json:"musicEnabled"`
	Difficulty   Difficulty `json:"difficulty"`
}

// UnlockedContent tracks content unlocked outside the cosmetic categories.
type UnlockedContent struct {
	Difficulties []Difficulty `json:"difficulty"`
	Powerups     []string     `json:"powerups"`
}

// MasteryProgress is the leveling state of one mode.
type MasteryProgress struct {
	Level int     `json:"level"`
	XP    float64 `json:"xp"`
}

// PrestigeState is the meta-progression block. It survives prestige resets.
type PrestigeState struct {
	Level         int          `json:"level"`
	Tokens        int          `json:"tokens"`
	Perks         []PerkRecord `json:"perks"`
	TotalRuns     int          `json:"totalRuns"`
	LifetimeScore float64      `json:"lifetimeScore"`
}

// PerkRecord references an owned perk from the perk catalog.
type PerkRecord struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// PetState tracks unlocked companions.
type PetState struct {
	Unlocked  []string       `json:"unlocked"`
	Selected  string         `json:"selected"`
	Fed       map[string]int `json:"fed"`
	Affection map[string]int `json:"affection"`
}

// DefaultPet is unlocked and selected on every new profile.
const DefaultPet = "rubber_duck"

// MaxAffection caps pet affection.
const MaxAffection = 100
