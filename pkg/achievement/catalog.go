// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package achievement

// Definition is an immutable catalog entry.
type Definition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"desc" yaml:"desc"`
	Icon        string `json:"icon" yaml:"icon"`
}

var catalog = []Definition{
	{ID: "first_blood", Name: "First Blood", Description: "Kill your first bug", Icon: "🐛"},
	{ID: "survivor", Name: "Survivor", Description: "Survive 100 enemies in Git Survivor", Icon: "💪"},
	{ID: "tower_master", Name: "Tower Master", Description: "Place 50 towers", Icon: "🏰"},
	{ID: "pr_pro", Name: "PR Pro", Description: "Review 100 PRs", Icon: "👀"},
	{ID: "perfect_review", Name: "Perfect Review", Description: "Get 100% accuracy in PR Rush", Icon: "💯"},
	{ID: "team_player", Name: "Team Player", Description: "Hire 10 developers", Icon: "👥"},
	{ID: "sprint_master", Name: "Sprint Master", Description: "Complete 10 sprints", Icon: "🏃"},
	{ID: "workaholic", Name: "Workaholic", Description: "Play 50 games total", Icon: "😅"},
	{ID: "coffee_addict", Name: "Coffee Addict", Description: "Buy coffee 20 times", Icon: "☕"},
	{ID: "boss_slayer", Name: "Boss Slayer", Description: "Defeat a boss enemy", Icon: "⚔️"},
	{ID: "no_bugs", Name: "Bug Free", Description: "Win Code Defense without losing HP", Icon: "✨"},
	{ID: "speedrun", Name: "Speedrunner", Description: "Complete a game in under 2 minutes", Icon: "⚡"},
	{ID: "hoarder", Name: "Hoarder", Description: "Collect 50 power-ups", Icon: "🎁"},
	{ID: "merge_king", Name: "Merge King", Description: "Defeat 10 merge conflicts", Icon: "👑"},
	{ID: "senior_dev", Name: "Senior Dev", Description: "Hire a senior developer", Icon: "🧔"},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, def := range catalog {
		idx[def.ID] = i
	}
	return idx
}()

// Catalog returns every achievement definition in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition with the given id.
func Lookup(id string) (Definition, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

// Known reports whether id is in the catalog.
func Known(id string) bool {
	_, ok := catalogIndex[id]
	return ok
}

// order returns the catalog position of id, or len(catalog) for unknown ids.
func order(id string) int {
	if i, ok := catalogIndex[id]; ok {
		return i
	}
	return len(catalog)
}
