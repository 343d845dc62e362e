package gamedata

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// Difficulty returns the selected difficulty, normal by default.
func (g *GameData) Difficulty() profile.Difficulty {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.data.Settings.Difficulty.Valid() {
		return profile.DifficultyNormal
	}
	return g.data.Settings.Difficulty
}

// SetDifficulty selects a difficulty and saves.
func (g *GameData) SetDifficulty(ctx context.Context, d profile.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
	}
	return g.Update(ctx, func(p *profile.PlayerProfile) error {
		p.Settings.Difficulty = d
		return nil
	})
}

// UnlockDifficulty records d as unlocked content. It reports whether d was new.
func (g *GameData) UnlockDifficulty(ctx context.Context, d profile.Difficulty) (bool, error) {
	if !d.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
	}
	var added bool
	err := g.Update(ctx, func(p *profile.PlayerProfile) error {
		added = p.UnlockDifficulty(d)
		return nil
	})
	return added, err
}

// Settings returns the current settings.
func (g *GameData) Settings() profile.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.data.Settings
}

// SetSoundEnabled toggles sound effects.
func (g *GameData) SetSoundEnabled(ctx context.Context, enabled bool) {
	_ = g.Update(ctx, func(p *profile.PlayerProfile) error {
		p.Settings.SoundEnabled = enabled
		return nil
	})
}

// SetMusicEnabled toggles music.
func (g *GameData) SetMusicEnabled(ctx context.Context, enabled bool) {
	_ = g.Update(ctx, func(p *profile.PlayerProfile) error {
		p.Settings.MusicEnabled = enabled
		return nil
	})
}

// SelectCosmetic selects an owned skin, color or trail.
func (g *GameData) SelectCosmetic(ctx context.Context, category profile.CosmeticCategory, id string) error {
	return g.Update(ctx, func(p *profile.PlayerProfile) error {
		return p.Customization.Select(category, id)
	})
}

// RecordEvent marks a one-off event as seen. It returns true the first time.
func (g *GameData) RecordEvent(ctx context.Context, id string) bool {
	return g.setFlag(ctx, id, func(p *profile.PlayerProfile) map[string]bool { return p.Events })
}

// FindEasterEgg marks an easter egg as found. It returns true the first time.
func (g *GameData) FindEasterEgg(ctx context.Context, id string) bool {
	return g.setFlag(ctx, id, func(p *profile.PlayerProfile) map[string]bool { return p.EasterEggs })
}

// HasEvent reports whether the event was recorded.
func (g *GameData) HasEvent(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.data.Events[id]
}

// HasEasterEgg reports whether the easter egg was found.
func (g *GameData) HasEasterEgg(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.data.EasterEggs[id]
}

func (g *GameData) setFlag(ctx context.Context, id string, flags func(*profile.PlayerProfile) map[string]bool) bool {
	if id == "" {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	m := flags(g.data)
	if m[id] {
		return false
	}
	m[id] = true
	g.saveLocked(ctx)
	return true
}
