package prestige

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

func setupPrestige(t *testing.T) (*System, *gamedata.GameData, store.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	st := store.NewRedisStore(client, store.RedisStoreConfig{})
	data, err := gamedata.New(context.Background(), st)
	require.NoError(t, err)

	return New(data), data, st
}

func mutate(t *testing.T, data *gamedata.GameData, fn func(p *profile.PlayerProfile)) {
	t.Helper()
	require.NoError(t, data.Update(context.Background(), func(p *profile.PlayerProfile) error {
		fn(p)
		return nil
	}))
}

func TestEconomyFormulas(t *testing.T) {
	tests := []struct {
		level    int
		score    float64
		required float64
		tokens   int
	}{
		{0, 0, 10000, 0},
		{0, 9999, 10000, 0},
		{0, 15000, 10000, 1},
		{2, 45000, 30000, 6},
		{5, 123456, 60000, 17},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.required, RequiredScore(tt.level), "level %d", tt.level)
		assert.Equal(t, tt.tokens, TokensFor(tt.score, tt.level), "level %d score %v", tt.level, tt.score)
	}
}

func TestPrestige_PreservesPermanentProgress(t *testing.T) {
	s, data, st := setupPrestige(t)
	ctx := context.Background()

	mutate(t, data, func(p *profile.PlayerProfile) {
		p.Achievements = []string{"first_blood", "survivor", "tower_master"}
		p.Stats.TotalScore = 15000
		p.Stats.GamesPlayed = 42
		p.Mastery[profile.ModeBossRush] = profile.MasteryProgress{Level: 12, XP: 3}
		_, _ = p.Customization.Unlock(profile.CategorySkin, "ninja")
		p.Events["halloween"] = true
		p.EasterEggs["konami"] = true
		p.Titles = []string{"prRush_master"}
	})
	require.NoError(t, data.SetDifficulty(ctx, profile.DifficultyHard))
	require.True(t, s.CanPrestige())
	require.Equal(t, 1, s.NextPrestigeTokens())

	res, err := s.Prestige(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 1, res.TokensEarned)
	assert.Equal(t, 1, res.TotalTokens)
	assert.Equal(t, "Prestige Level 1!", res.Message)

	for _, p := range []*profile.PlayerProfile{data.Profile(), mustLoad(t, st)} {
		assert.ElementsMatch(t, []string{"first_blood", "survivor", "tower_master"}, p.Achievements)
		assert.Zero(t, p.Stats.TotalScore)
		assert.Zero(t, p.Stats.GamesPlayed)
		assert.Equal(t, profile.NewStats(), p.Stats)

		assert.Equal(t, profile.PrestigeState{
			Level: 1, Tokens: 1, TotalRuns: 1, LifetimeScore: 15000, Perks: []profile.PerkRecord{},
		}, p.Prestige)

		assert.Equal(t, profile.MasteryProgress{Level: 12, XP: 3}, p.Mastery[profile.ModeBossRush])
		assert.Contains(t, p.Customization.UnlockedSkins, "ninja")
		assert.True(t, p.Events["halloween"])
		assert.True(t, p.EasterEggs["konami"])
		assert.Equal(t, []string{"prRush_master"}, p.Titles)
		assert.Equal(t, profile.DifficultyHard, p.Settings.Difficulty)
	}
}

func mustLoad(t *testing.T, st store.Store) *profile.PlayerProfile {
	t.Helper()
	p, err := st.GetProfile(context.Background())
	require.NoError(t, err)
	return p
}

func TestPrestige_NotEligible(t *testing.T) {
	s, data, _ := setupPrestige(t)
	mutate(t, data, func(p *profile.PlayerProfile) {
		p.Stats.TotalScore = 19999
		p.Prestige.Level = 1
	})

	res, err := s.Prestige(context.Background())
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrNotEligible)
	assert.EqualError(t, err, "Not enough score to prestige!")

	p := data.Profile()
	assert.Equal(t, 19999.0, p.Stats.TotalScore)
	assert.Equal(t, 1, p.Prestige.Level)
}

func TestPrestige_LevelAddsBonusTokens(t *testing.T) {
	s, data, _ := setupPrestige(t)
	mutate(t, data, func(p *profile.PlayerProfile) {
		p.Stats.TotalScore = 45000
		p.Prestige.Level = 2
		p.Prestige.Tokens = 4
		p.Prestige.LifetimeScore = 50000
	})

	res, err := s.Prestige(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, res.TokensEarned)
	assert.Equal(t, 10, res.TotalTokens)

	info := s.Info()
	assert.Equal(t, 3, info.Level)
	assert.Equal(t, 95000.0, info.LifetimeScore)
	assert.False(t, info.CanPrestige)
	assert.Equal(t, 40000.0, info.RequiredScore)
	assert.Equal(t, 3, info.NextPrestigeTokens)
}

func TestPurchasePerk_Stacking(t *testing.T) {
	s, data, _ := setupPrestige(t)
	ctx := context.Background()
	mutate(t, data, func(p *profile.PlayerProfile) { p.Prestige.Tokens = 10 })

	for i := 1; i <= 3; i++ {
		res, err := s.PurchasePerk(ctx, "scoreBoost1")
		require.NoError(t, err)
		assert.Equal(t, i, res.Level)
		assert.Equal(t, 10-i, res.RemainingTokens)
		assert.Equal(t, "Purchased Score Boost I!", res.Message)
	}

	assert.Equal(t, 3, s.PerkLevel("scoreBoost1"))
	assert.True(t, s.HasPerk("scoreBoost1"))
	assert.InDelta(t, 1.331, s.ActiveBonuses().ScoreMultiplier, 1e-9)
	assert.Len(t, data.Profile().Prestige.Perks, 1, "repeat purchases update one record")
}

func TestPurchasePerk_MissingPrerequisite(t *testing.T) {
	s, data, _ := setupPrestige(t)
	mutate(t, data, func(p *profile.PlayerProfile) { p.Prestige.Tokens = 10 })

	res, err := s.PurchasePerk(context.Background(), "scoreBoost2")
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrMissingPrerequisite)
	assert.Contains(t, err.Error(), "Score Boost I")

	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "scoreBoost2", rejection.PerkID)

	assert.Equal(t, 10, data.Profile().Prestige.Tokens)
	assert.False(t, s.HasPerk("scoreBoost2"))
}

func TestPurchasePerk_Rejections(t *testing.T) {
	s, data, _ := setupPrestige(t)
	ctx := context.Background()
	mutate(t, data, func(p *profile.PlayerProfile) { p.Prestige.Tokens = 6 })

	_, err := s.PurchasePerk(ctx, "doubleJump")
	assert.ErrorIs(t, err, ErrUnknownPerk)
	assert.EqualError(t, err, "Invalid perk!")

	_, err = s.PurchasePerk(ctx, "secondChance")
	require.NoError(t, err)

	_, err = s.PurchasePerk(ctx, "secondChance")
	assert.ErrorIs(t, err, ErrPerkMaxed)

	_, err = s.PurchasePerk(ctx, "bossSlayer")
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.EqualError(t, err, "Not enough prestige tokens!")

	assert.Equal(t, 1, data.Profile().Prestige.Tokens)
	assert.True(t, s.ActiveBonuses().Revive)
}

func TestCompute(t *testing.T) {
	b := Compute(nil)
	assert.Equal(t, NeutralBonuses(), b)
	assert.False(t, b.Revive)
	assert.Zero(t, b.StartingResources)

	b = Compute([]profile.PerkRecord{
		{ID: "scoreBoost1", Level: 2},
		{ID: "scoreBoost2", Level: 1},
		{ID: "startingResources", Level: 3},
		{ID: "damageReduction", Level: 2},
		{ID: "secondChance", Level: 1},
		{ID: "bossSlayer", Level: 9},
		{ID: "retired_perk", Level: 4},
	})
	assert.InDelta(t, 1.1*1.1*1.25, b.ScoreMultiplier, 1e-9)
	assert.Equal(t, 300.0, b.StartingResources)
	assert.InDelta(t, 0.81, b.DamageReduction, 1e-9)
	assert.True(t, b.Revive)
	assert.InDelta(t, 2.25, b.BossDamage, 1e-9, "levels above the catalog cap are clamped")
	assert.Equal(t, 1.0, b.MoveSpeed)
}

func TestCatalog(t *testing.T) {
	perks := Perks()
	require.Len(t, perks, 16)

	seen := map[string]bool{}
	for _, p := range perks {
		assert.False(t, seen[p.ID], "duplicate perk %s", p.ID)
		seen[p.ID] = true
		assert.Positive(t, p.Cost, p.ID)
		assert.Positive(t, p.MaxLevel, p.ID)
		assert.NotNil(t, p.Effect, p.ID)
		for _, req := range p.Requires {
			_, ok := LookupPerk(req)
			assert.True(t, ok, "%s requires unknown %s", p.ID, req)
		}
	}

	perks[0].Cost = 99
	p, _ := LookupPerk(perks[0].ID)
	assert.NotEqual(t, 99, p.Cost)
}
