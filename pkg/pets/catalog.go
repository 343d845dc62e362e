package pets

import (
	"fmt"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Rarity grades a pet.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Bonus names a passive effect granted by the selected pet.
type Bonus string

const (
	BonusXP              Bonus = "xpBonus"
	BonusLuck            Bonus = "luckBonus"
	BonusSpeed           Bonus = "speedBonus"
	BonusEnergyRegen     Bonus = "energyRegen"
	BonusDamage          Bonus = "damageBonus"
	BonusCritChance      Bonus = "critChance"
	BonusHealth          Bonus = "healthBonus"
	BonusLoot            Bonus = "lootBonus"
	BonusScore           Bonus = "scoreBonus"
	BonusPowerUpDuration Bonus = "powerUpDuration"
	BonusPowerUpChance   Bonus = "powerUpChance"
	BonusReviveChance    Bonus = "reviveChance"
	BonusAllStats        Bonus = "allStats"
	BonusResource        Bonus = "resourceBonus"
	BonusAutoCollect     Bonus = "autoCollect"
)

// Pet is an entry of the companion catalog. Multipliers hold numeric
// bonuses; Flags hold on/off abilities.
type Pet struct {
	ID          string
	Name        string
	Emoji       string
	Rarity      Rarity
	Description string
	Multipliers map[Bonus]float64
	Flags       []Bonus
	Requirement Requirement
	Color       uint32
}

// Requirement is a pet unlock condition evaluated against a profile.
type Requirement interface {
	Met(p *profile.PlayerProfile) bool
	String() string
}

// Default pets are owned from the start.
type Default struct{}

// GamesPlayed requires the global games played counter.
type GamesPlayed struct{ N int }

// TotalScore requires the global score aggregate.
type TotalScore struct{ N float64 }

// AchievementCount requires a number of unlocked achievements.
type AchievementCount struct{ N int }

// EnemiesDefeated requires gitSurvivor kills.
type EnemiesDefeated struct{ N int }

// EasterEgg requires a found easter egg.
type EasterEgg struct{ ID string }

// Event requires a recorded event.
type Event struct{ ID string }

// ModeMastery requires one mode at or above Level.
type ModeMastery struct{ Level int }

// PrestigeLevel requires a prestige level.
type PrestigeLevel struct{ N int }

// TotalMastery requires the sum of mastery levels across modes.
type TotalMastery struct{ N int }

func (Default) Met(*profile.PlayerProfile) bool { return true }

func (r GamesPlayed) Met(p *profile.PlayerProfile) bool {
	return p.Stats.GamesPlayed >= float64(r.N)
}

func (r TotalScore) Met(p *profile.PlayerProfile) bool {
	return p.Stats.TotalScore >= r.N
}

func (r AchievementCount) Met(p *profile.PlayerProfile) bool {
	return len(p.Achievements) >= r.N
}

func (r EnemiesDefeated) Met(p *profile.PlayerProfile) bool {
	v, _ := p.Stats.Get(profile.ModeStat(profile.ModeGitSurvivor, profile.CounterEnemiesKilled))
	return v >= float64(r.N)
}

func (r EasterEgg) Met(p *profile.PlayerProfile) bool { return p.EasterEggs[r.ID] }

func (r Event) Met(p *profile.PlayerProfile) bool { return p.Events[r.ID] }

func (r ModeMastery) Met(p *profile.PlayerProfile) bool {
	return p.HighestMasteryLevel() >= r.Level
}

func (r PrestigeLevel) Met(p *profile.PlayerProfile) bool {
	return p.Prestige.Level >= r.N
}

func (r TotalMastery) Met(p *profile.PlayerProfile) bool {
	return p.TotalMasteryLevel() >= r.N
}

func (Default) String() string            { return "Default" }
func (r GamesPlayed) String() string      { return fmt.Sprintf("Play %d games", r.N) }
func (r TotalScore) String() string       { return fmt.Sprintf("Score %.0f total", r.N) }
func (r AchievementCount) String() string { return fmt.Sprintf("Complete %d achievements", r.N) }
func (r EnemiesDefeated) String() string  { return fmt.Sprintf("Defeat %d enemies", r.N) }
func (r EasterEgg) String() string        { return fmt.Sprintf("Find %s easter egg", r.ID) }
func (r Event) String() string            { return fmt.Sprintf("Trigger the %s event", r.ID) }
func (r ModeMastery) String() string      { return fmt.Sprintf("Reach mastery level %d", r.Level) }
func (r PrestigeLevel) String() string    { return fmt.Sprintf("Prestige level %d", r.N) }
func (r TotalMastery) String() string     { return fmt.Sprintf("Total mastery level %d", r.N) }

// Event and easter egg ids that unlock pets. Scenes record them through
// GameData.RecordEvent and GameData.FindEasterEgg.
const (
	EventMidnight    = "midnight"
	EasterEggRainbow = "rainbow"
)

var catalog = []Pet{
	{
		ID: profile.DefaultPet, Name: "Rubber Duck", Emoji: "🦆", Rarity: RarityCommon,
		Description: "Classic debugging companion",
		Multipliers: map[Bonus]float64{BonusXP: 1.05, BonusLuck: 1.05},
		Requirement: Default{}, Color: 0xFFFF00,
	},
	{
		ID: "coffee_cup", Name: "Coffee Cup", Emoji: "☕", Rarity: RarityCommon,
		Description: "Keeps you energized",
		Multipliers: map[Bonus]float64{BonusSpeed: 1.1, BonusEnergyRegen: 1.1},
		Requirement: GamesPlayed{N: 10}, Color: 0x8B4513,
	},
	{
		ID: "code_cat", Name: "Code Cat", Emoji: "🐱", Rarity: RarityUncommon,
		Description: "Purrs when bugs are near",
		Multipliers: map[Bonus]float64{BonusDamage: 1.15, BonusCritChance: 1.1},
		Requirement: TotalScore{N: 10000}, Color: 0xFF6600,
	},
	{
		ID: "debug_dog", Name: "Debug Dog", Emoji: "🐕", Rarity: RarityUncommon,
		Description: "Sniffs out errors",
		Multipliers: map[Bonus]float64{BonusHealth: 1.15, BonusLoot: 1.15},
		Requirement: AchievementCount{N: 5}, Color: 0x8B4513,
	},
	{
		ID: "code_owl", Name: "Code Owl", Emoji: "🦉", Rarity: RarityRare,
		Description: "Wise and watchful",
		Multipliers: map[Bonus]float64{BonusXP: 1.2, BonusScore: 1.15},
		Requirement: Event{ID: EventMidnight}, Color: 0x8B4513,
	},
	{
		ID: "cyber_dragon", Name: "Cyber Dragon", Emoji: "🐉", Rarity: RarityRare,
		Description: "Breathes digital fire",
		Multipliers: map[Bonus]float64{BonusDamage: 1.25, BonusPowerUpDuration: 1.2},
		Requirement: EnemiesDefeated{N: 500}, Color: 0xFF0000,
	},
	{
		ID: "phoenix", Name: "Phoenix", Emoji: "🔥", Rarity: RarityEpic,
		Description: "Revive from crashes",
		Multipliers: map[Bonus]float64{BonusReviveChance: 0.1, BonusScore: 1.2},
		Requirement: ModeMastery{Level: 50}, Color: 0xFF6600,
	},
	{
		ID: "unicorn", Name: "Unicorn", Emoji: "🦄", Rarity: RarityEpic,
		Description: "Magical coding powers",
		Multipliers: map[Bonus]float64{BonusLuck: 1.5, BonusXP: 1.25, BonusPowerUpChance: 1.3},
		Requirement: EasterEgg{ID: EasterEggRainbow}, Color: 0xFF00FF,
	},
	{
		ID: "robot_companion", Name: "AI Companion", Emoji: "🤖", Rarity: RarityLegendary,
		Description: "Perfect automated assistant",
		Multipliers: map[Bonus]float64{BonusAllStats: 1.2},
		Flags:       []Bonus{BonusAutoCollect},
		Requirement: PrestigeLevel{N: 5}, Color: 0x00FFFF,
	},
	{
		ID: "golden_goose", Name: "Golden Goose", Emoji: "🪿", Rarity: RarityLegendary,
		Description: "Lays golden code",
		Multipliers: map[Bonus]float64{BonusResource: 2.0, BonusLoot: 1.5, BonusScore: 1.3},
		Requirement: TotalMastery{N: 500}, Color: 0xFFD700,
	},
}

var byID = func() map[string]*Pet {
	m := make(map[string]*Pet, len(catalog))
	for i := range catalog {
		m[catalog[i].ID] = &catalog[i]
	}
	return m
}()

// Catalog returns every pet in display order. The returned pets share their
// bonus maps with the catalog and must not be modified.
func Catalog() []Pet {
	out := make([]Pet, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Pet, bool) {
	p, ok := byID[id]
	if !ok {
		return Pet{}, false
	}
	return *p, true
}
