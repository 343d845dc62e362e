// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package prestige

import (
	"math"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Field names one value of the Bonuses record.
type Field string

const (
	FieldScoreMultiplier   Field = "scoreMultiplier"
	FieldPowerUpDuration   Field = "powerUpDuration"
	FieldPowerUpChance     Field = "powerUpChance"
	FieldHealthMultiplier  Field = "healthMultiplier"
	FieldDamageReduction   Field = "damageReduction"
	FieldAttackSpeed       Field = "attackSpeed"
	FieldAttackDamage      Field = "attackDamage"
	FieldStartingResources Field = "startingResources"
	FieldResourceGain      Field = "resourceGain"
	FieldXPMultiplier      Field = "xpMultiplier"
	FieldComboMultiplier   Field = "comboMultiplier"
	FieldBossDamage        Field = "bossDamage"
	FieldLootQuality       Field = "lootQuality"
	FieldMoveSpeed         Field = "moveSpeed"
	FieldRevive            Field = "revive"
)

// Bonuses is the aggregate of every owned perk's effect.
type Bonuses struct {
	ScoreMultiplier   float64 `json:"scoreMultiplier"`
	PowerUpDuration   float64 `json:"powerUpDuration"`
	PowerUpChance     float64 `json:"powerUpChance"`
	HealthMultiplier  float64 `json:"healthMultiplier"`
	DamageReduction   float64 `json:"damageReduction"`
	AttackSpeed       float64 `json:"attackSpeed"`
	AttackDamage      float64 `json:"attackDamage"`
	StartingResources float64 `json:"startingResources"`
	ResourceGain      float64 `json:"resourceGain"`
	XPMultiplier      float64 `json:"xpMultiplier"`
	ComboMultiplier   float64 `json:"comboMultiplier"`
	BossDamage        float64 `json:"bossDamage"`
	LootQuality       float64 `json:"lootQuality"`
	MoveSpeed         float64 `json:"moveSpeed"`
	Revive            bool    `json:"revive"`
}

// NeutralBonuses returns the record of a player owning no perks.
func NeutralBonuses() Bonuses {
	return Bonuses{
		ScoreMultiplier:  1,
		PowerUpDuration:  1,
		PowerUpChance:    1,
		HealthMultiplier: 1,
		DamageReduction:  1,
		AttackSpeed:      1,
		AttackDamage:     1,
		ResourceGain:     1,
		XPMultiplier:     1,
		ComboMultiplier:  1,
		BossDamage:       1,
		LootQuality:      1,
		MoveSpeed:        1,
	}
}

func (b *Bonuses) number(f Field) *float64 {
	switch f {
	case FieldScoreMultiplier:
		return &b.ScoreMultiplier
	case FieldPowerUpDuration:
		return &b.PowerUpDuration
	case FieldPowerUpChance:
		return &b.PowerUpChance
	case FieldHealthMultiplier:
		return &b.HealthMultiplier
	case FieldDamageReduction:
		return &b.DamageReduction
	case FieldAttackSpeed:
		return &b.AttackSpeed
	case FieldAttackDamage:
		return &b.AttackDamage
	case FieldStartingResources:
		return &b.StartingResources
	case FieldResourceGain:
		return &b.ResourceGain
	case FieldXPMultiplier:
		return &b.XPMultiplier
	case FieldComboMultiplier:
		return &b.ComboMultiplier
	case FieldBossDamage:
		return &b.BossDamage
	case FieldLootQuality:
		return &b.LootQuality
	case FieldMoveSpeed:
		return &b.MoveSpeed
	}
	return nil
}

func (b *Bonuses) flag(f Field) *bool {
	if f == FieldRevive {
		return &b.Revive
	}
	return nil
}

// Effect is what owning a perk does to Bonuses. The concrete types are
// Multiplier, Additive and Flag.
type Effect interface {
	apply(b *Bonuses, level int)
}

// Multiplier compounds: a perk at level n contributes Factor^n.
type Multiplier struct {
	Field  Field
	Factor float64
}

// Additive scales linearly: a perk at level n contributes Amount*n.
type Additive struct {
	Field  Field
	Amount float64
}

// Flag turns a boolean bonus on at any level.
type Flag struct {
	Field Field
}

func (m Multiplier) apply(b *Bonuses, level int) {
	if v := b.number(m.Field); v != nil {
		*v *= math.Pow(m.Factor, float64(level))
	}
}

func (a Additive) apply(b *Bonuses, level int) {
	if v := b.number(a.Field); v != nil {
		*v += a.Amount * float64(level)
	}
}

func (f Flag) apply(b *Bonuses, _ int) {
	if v := b.flag(f.Field); v != nil {
		*v = true
	}
}

// Perk is an entry of the immutable perk catalog.
type Perk struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Cost        int
	MaxLevel    int
	Requires    []string
	Effect      Effect
}

var catalog = []Perk{
	{ID: "scoreBoost1", Name: "Score Boost I", Description: "+10% score multiplier", Icon: "📈",
		Cost: 1, MaxLevel: 5, Effect: Multiplier{FieldScoreMultiplier, 1.1}},
	{ID: "scoreBoost2", Name: "Score Boost II", Description: "+25% score multiplier", Icon: "📊",
		Cost: 3, MaxLevel: 3, Requires: []string{"scoreBoost1"}, Effect: Multiplier{FieldScoreMultiplier, 1.25}},
	{ID: "powerUpDuration", Name: "Extended Power-ups", Description: "+50% power-up duration", Icon: "⏱️",
		Cost: 2, MaxLevel: 3, Effect: Multiplier{FieldPowerUpDuration, 1.5}},
	{ID: "powerUpChance", Name: "Lucky Find", Description: "+20% power-up spawn rate", Icon: "🍀",
		Cost: 2, MaxLevel: 5, Effect: Multiplier{FieldPowerUpChance, 1.2}},
	{ID: "healthBoost", Name: "Vitality", Description: "Start with +25% health", Icon: "❤️",
		Cost: 2, MaxLevel: 4, Effect: Multiplier{FieldHealthMultiplier, 1.25}},
	{ID: "damageReduction", Name: "Armor", Description: "Take 10% less damage", Icon: "🛡️",
		Cost: 3, MaxLevel: 3, Effect: Multiplier{FieldDamageReduction, 0.9}},
	{ID: "attackSpeed", Name: "Quick Hands", Description: "+15% attack speed", Icon: "⚡",
		Cost: 2, MaxLevel: 4, Effect: Multiplier{FieldAttackSpeed, 1.15}},
	{ID: "attackDamage", Name: "Heavy Hitter", Description: "+20% damage", Icon: "💪",
		Cost: 3, MaxLevel: 3, Effect: Multiplier{FieldAttackDamage, 1.2}},
	{ID: "startingResources", Name: "Head Start", Description: "Start with bonus resources", Icon: "💰",
		Cost: 2, MaxLevel: 5, Effect: Additive{FieldStartingResources, 100}},
	{ID: "resourceGain", Name: "Prosperity", Description: "+15% resource generation", Icon: "💎",
		Cost: 2, MaxLevel: 5, Effect: Multiplier{FieldResourceGain, 1.15}},
	{ID: "xpBoost", Name: "Fast Learner", Description: "+25% XP gain", Icon: "📚",
		Cost: 2, MaxLevel: 4, Effect: Multiplier{FieldXPMultiplier, 1.25}},
	{ID: "comboBonus", Name: "Combo Master", Description: "Combos build faster", Icon: "🔥",
		Cost: 3, MaxLevel: 3, Effect: Multiplier{FieldComboMultiplier, 1.3}},
	{ID: "secondChance", Name: "Second Chance", Description: "Revive once per game", Icon: "🔄",
		Cost: 5, MaxLevel: 1, Effect: Flag{FieldRevive}},
	{ID: "bossSlayer", Name: "Boss Slayer", Description: "+50% damage vs bosses", Icon: "👹",
		Cost: 4, MaxLevel: 2, Effect: Multiplier{FieldBossDamage, 1.5}},
	{ID: "treasureHunter", Name: "Treasure Hunter", Description: "Better loot from enemies", Icon: "🎁",
		Cost: 3, MaxLevel: 3, Effect: Multiplier{FieldLootQuality, 1.3}},
	{ID: "speedDemon", Name: "Speed Demon", Description: "+20% movement speed", Icon: "🏃",
		Cost: 2, MaxLevel: 3, Effect: Multiplier{FieldMoveSpeed, 1.2}},
}

var byID = func() map[string]Perk {
	m := make(map[string]Perk, len(catalog))
	for _, p := range catalog {
		m[p.ID] = p
	}
	return m
}()

// Perks returns the perk catalog in display order.
func Perks() []Perk {
	out := make([]Perk, len(catalog))
	copy(out, catalog)
	return out
}

// LookupPerk returns the catalog entry for id.
func LookupPerk(id string) (Perk, bool) {
	p, ok := byID[id]
	return p, ok
}

// Compute folds owned perks into a Bonuses record. Unknown ids are ignored and
// levels are capped at the catalog maximum.
func Compute(owned []profile.PerkRecord) Bonuses {
	b := NeutralBonuses()
	for _, o := range owned {
		perk, ok := byID[o.ID]
		if !ok || o.Level < 1 {
			continue
		}
		perk.Effect.apply(&b, min(o.Level, perk.MaxLevel))
	}
	return b
}
