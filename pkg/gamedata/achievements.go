package gamedata

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/achievement"
	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
)

// Achievements returns the full achievement catalog.
func (g *GameData) Achievements() []achievement.Definition {
	return achievement.Catalog()
}

// UnlockedAchievements returns the definitions of unlocked achievements in
// unlock order.
func (g *GameData) UnlockedAchievements() []achievement.Definition {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]achievement.Definition, 0, len(g.data.Achievements))
	for _, id := range g.data.Achievements {
		if def, ok := achievement.Lookup(id); ok {
			out = append(out, def)
		}
	}
	return out
}

// HasAchievement reports whether id is unlocked.
func (g *GameData) HasAchievement(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.data.HasAchievement(id)
}

// UnlockAchievement unlocks id and saves. It returns nil when id is already
// unlocked or not in the catalog; nothing is saved in that case.
func (g *GameData) UnlockAchievement(ctx context.Context, id string) *achievement.Definition {
	g.mu.Lock()
	defer g.mu.Unlock()

	def, ok := achievement.Lookup(id)
	if !ok {
		logrus.Warnf("ignoring unlock of unknown achievement %q", id)
		return nil
	}
	if !g.data.AddAchievement(id) {
		return nil
	}

	metrics.AchievementsUnlockedTotal.WithLabelValues(id).Inc()
	logrus.Infof("achievement unlocked: %s", id)
	g.saveLocked(ctx)
	return &def
}

// CheckAchievements evaluates the achievement rules against current stats,
// unlocks what newly qualifies and returns only those definitions.
func (g *GameData) CheckAchievements(ctx context.Context) []achievement.Definition {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids, err := g.engine.Evaluate(ctx, g.data)
	if err != nil {
		logrus.Errorf("achievement evaluation failed: %v", err)
		return nil
	}

	var unlocked []achievement.Definition
	for _, id := range ids {
		def, ok := achievement.Lookup(id)
		if !ok || !g.data.AddAchievement(id) {
			continue
		}
		metrics.AchievementsUnlockedTotal.WithLabelValues(id).Inc()
		logrus.Infof("achievement unlocked: %s", id)
		unlocked = append(unlocked, def)
	}

	if len(unlocked) > 0 {
		g.saveLocked(ctx)
	}
	return unlocked
}
