// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for a cosmetic category outside skin/color/trail.
	ErrUnknownCategory = errors.New("unknown cosmetic category")

	// ErrNotUnlocked is returned when selecting something the player does not own.
	ErrNotUnlocked = errors.New("not unlocked")
)

// CosmeticCategory is one of the selectable cosmetic slots.
type CosmeticCategory string

const (
	CategorySkin  CosmeticCategory = "skin"
	CategoryColor CosmeticCategory = "color"
	CategoryTrail CosmeticCategory = "trail"
)

const (
	DefaultSkin  = "default"
	DefaultColor = "blue"
	DefaultTrail = "none"
)

// Customization holds unlocked cosmetics and the current selection per category.
type Customization struct {
	UnlockedSkins  []string `json:"unlockedSkins"`
	SelectedSkin   string   `json:"selectedSkin"`
	UnlockedColors []string `json:"unlockedColors"`
	SelectedColor  string   `json:"selectedColor"`
	UnlockedTrails []string `json:"unlockedTrails"`
	SelectedTrail  string   `json:"selectedTrail"`
}

// NewCustomization returns the starter cosmetics.
func NewCustomization() Customization {
	return Customization{
		UnlockedSkins:  []string{DefaultSkin},
		SelectedSkin:   DefaultSkin,
		UnlockedColors: []string{DefaultColor, "green"},
		SelectedColor:  DefaultColor,
		UnlockedTrails: []string{DefaultTrail},
		SelectedTrail:  DefaultTrail,
	}
}

func (c *Customization) slot(category CosmeticCategory) (*[]string, *string, string, error) {
	switch category {
	case CategorySkin:
		return &c.UnlockedSkins, &c.SelectedSkin, DefaultSkin, nil
	case CategoryColor:
		return &c.UnlockedColors, &c.SelectedColor, DefaultColor, nil
	case CategoryTrail:
		return &c.UnlockedTrails, &c.SelectedTrail, DefaultTrail, nil
	}
	return nil, nil, "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Unlock adds id to the category. It returns true if id was not owned yet.
func (c *Customization) Unlock(category CosmeticCategory, id string) (bool, error) {
	unlocked, _, _, err := c.slot(category)
	if err != nil {
		return false, err
	}
	if contains(*unlocked, id) {
		return false, nil
	}
	*unlocked = append(*unlocked, id)
	return true, nil
}

// Select makes id the active cosmetic for the category.
func (c *Customization) Select(category CosmeticCategory, id string) error {
	unlocked, selected, _, err := c.slot(category)
	if err != nil {
		return err
	}
	if !contains(*unlocked, id) {
		return fmt.Errorf("%s %q: %w", category, id, ErrNotUnlocked)
	}
	*selected = id
	return nil
}

// IsUnlocked reports whether id is owned in the category.
func (c *Customization) IsUnlocked(category CosmeticCategory, id string) bool {
	unlocked, _, _, err := c.slot(category)
	if err != nil {
		return false
	}
	return contains(*unlocked, id)
}

// Selected returns the active cosmetic for the category.
func (c *Customization) Selected(category CosmeticCategory) string {
	_, selected, _, err := c.slot(category)
	if err != nil {
		return ""
	}
	return *selected
}

func (c *Customization) normalize() {
	starter := NewCustomization()
	for _, category := range []CosmeticCategory{CategorySkin, CategoryColor, CategoryTrail} {
		unlocked, selected, def, _ := c.slot(category)
		starterUnlocked, _, _, _ := starter.slot(category)

		merged := append(append([]string{}, *starterUnlocked...), *unlocked...)
		*unlocked = dedupe(merged)

		if !contains(*unlocked, *selected) {
			*selected = def
		}
	}
}

func (c *Customization) clone() Customization {
	return Customization{
		UnlockedSkins:  cloneStrings(c.UnlockedSkins),
		SelectedSkin:   c.SelectedSkin,
		UnlockedColors: cloneStrings(c.UnlockedColors),
		SelectedColor:  c.SelectedColor,
		UnlockedTrails: cloneStrings(c.UnlockedTrails),
		SelectedTrail:  c.SelectedTrail,
	}
}
