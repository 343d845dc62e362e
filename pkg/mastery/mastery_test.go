package mastery

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

func setupMastery(t *testing.T) (*System, *gamedata.GameData) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	data, err := gamedata.New(context.Background(), store.NewRedisStore(client, store.RedisStoreConfig{}))
	require.NoError(t, err)

	return New(data, WithRand(rand.New(rand.NewPCG(1, 2)))), data
}

func setLevel(t *testing.T, data *gamedata.GameData, mode profile.Mode, level int) {
	t.Helper()
	require.NoError(t, data.Update(context.Background(), func(p *profile.PlayerProfile) error {
		p.Mastery[mode] = profile.MasteryProgress{Level: level}
		return nil
	}))
}

func TestAddXP_ExactLevel(t *testing.T) {
	s, data := setupMastery(t)

	res, err := s.AddXP(context.Background(), profile.ModeGitSurvivor, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, []int{2}, res.LevelsGained)
	assert.Zero(t, res.CurrentXP)
	assert.Equal(t, RequiredXP(2), res.RequiredXP)

	p := data.Profile()
	assert.Equal(t, profile.MasteryProgress{Level: 2}, p.Mastery[profile.ModeGitSurvivor])
}

func TestAddXP_Cascade(t *testing.T) {
	s, data := setupMastery(t)

	res, err := s.AddXP(context.Background(), profile.ModePRRush, 1000)
	require.NoError(t, err)
	require.Greater(t, len(res.LevelsGained), 1)

	consumed := 0
	for level := 1; level < res.NewLevel; level++ {
		consumed += RequiredXP(level)
	}
	assert.Equal(t, 1000.0, float64(consumed)+res.CurrentXP)
	assert.Less(t, res.CurrentXP, float64(res.RequiredXP))

	for i, l := range res.LevelsGained {
		assert.Equal(t, i+2, l, "levels gained must be ascending")
	}

	// level 5 pays 500 coins into the score aggregate
	assert.Equal(t, 500.0, data.GetStatPath("totalScore"))
	require.Len(t, res.Rewards, 1)
	assert.Equal(t, Coins{Amount: 500}, res.Rewards[0].Reward)
}

func TestAddXP_Level10GrantsOneSkin(t *testing.T) {
	s, data := setupMastery(t)
	ctx := context.Background()
	setLevel(t, data, profile.ModeDebugDungeon, 9)

	res, err := s.AddXP(ctx, profile.ModeDebugDungeon, float64(RequiredXP(9)))
	require.NoError(t, err)
	require.Equal(t, 10, res.NewLevel)
	require.Len(t, res.Rewards, 1)

	cosmetic, ok := res.Rewards[0].Reward.(Cosmetic)
	require.True(t, ok)
	assert.Equal(t, profile.CategorySkin, cosmetic.Category)
	assert.Contains(t, skinPool, cosmetic.ID)
	assert.Contains(t, data.Profile().Customization.UnlockedSkins, cosmetic.ID)

	res, err = s.AddXP(ctx, profile.ModeDebugDungeon, float64(RequiredXP(10)))
	require.NoError(t, err)
	assert.Equal(t, 11, res.NewLevel)
	assert.Empty(t, res.Rewards)
}

func TestAddXP_RewardKinds(t *testing.T) {
	tests := []struct {
		from  int
		check func(t *testing.T, p *profile.PlayerProfile, r Reward)
	}{
		{from: 19, check: func(t *testing.T, p *profile.PlayerProfile, r Reward) {
			c := r.(Cosmetic)
			assert.Equal(t, profile.CategoryColor, c.Category)
			assert.Contains(t, p.Customization.UnlockedColors, c.ID)
		}},
		{from: 24, check: func(t *testing.T, p *profile.PlayerProfile, r Reward) {
			pu := r.(Powerup)
			assert.Contains(t, powerupPool, pu.ID)
			assert.Contains(t, p.UnlockedContent.Powerups, pu.ID)
		}},
		{from: 34, check: func(t *testing.T, p *profile.PlayerProfile, r Reward) {
			c := r.(Cosmetic)
			assert.Equal(t, profile.CategoryTrail, c.Category)
			assert.Contains(t, p.Customization.UnlockedTrails, c.ID)
		}},
		{from: 39, check: func(t *testing.T, p *profile.PlayerProfile, r Reward) {
			assert.Equal(t, Cosmetic{Category: profile.CategorySkin, ID: "legendary"}, r)
			assert.Contains(t, p.Customization.UnlockedSkins, "legendary")
		}},
		{from: 49, check: func(t *testing.T, p *profile.PlayerProfile, r Reward) {
			assert.Equal(t, "bossRush_master", r.(Title).ID)
			assert.Contains(t, p.Titles, "bossRush_master")
		}},
	}

	for _, tt := range tests {
		s, data := setupMastery(t)
		setLevel(t, data, profile.ModeBossRush, tt.from)

		res, err := s.AddXP(context.Background(), profile.ModeBossRush, float64(RequiredXP(tt.from)))
		require.NoError(t, err)
		require.Len(t, res.Rewards, 1, "level %d", tt.from+1)
		tt.check(t, data.Profile(), res.Rewards[0].Reward)
	}
}

func TestAddXP_MaxLevel(t *testing.T) {
	s, data := setupMastery(t)
	ctx := context.Background()
	setLevel(t, data, profile.ModeCodeDefense, 99)

	res, err := s.AddXP(ctx, profile.ModeCodeDefense, 1e12)
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, res.NewLevel)
	assert.Zero(t, res.CurrentXP)
	assert.Contains(t, data.Profile().Titles, "codeDefense_grandmaster")

	res, err = s.AddXP(ctx, profile.ModeCodeDefense, 500)
	require.NoError(t, err)
	assert.Equal(t, MaxLevel, res.NewLevel)
	assert.Empty(t, res.LevelsGained)
	assert.Zero(t, data.Profile().Mastery[profile.ModeCodeDefense].XP)
}

func TestAddXP_Errors(t *testing.T) {
	s, _ := setupMastery(t)
	ctx := context.Background()

	_, err := s.AddXP(ctx, profile.Mode("tetris"), 10)
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = s.AddXP(ctx, profile.ModeGitSurvivor, -1)
	assert.ErrorIs(t, err, ErrInvalidXP)
}

func TestInfo(t *testing.T) {
	s, _ := setupMastery(t)

	_, err := s.AddXP(context.Background(), profile.ModeRefactorRace, 50)
	require.NoError(t, err)

	info, err := s.Info(profile.ModeRefactorRace)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 50.0, info.CurrentXP)
	assert.Equal(t, 100, info.RequiredXP)
	assert.Equal(t, 50.0, info.Progress)
	require.NotNil(t, info.NextReward)
	assert.Equal(t, 5, info.NextReward.Level)
	assert.Equal(t, 4, info.NextReward.LevelsAway)
	assert.Equal(t, Coins{Amount: 500}, info.NextReward.Reward)

	_, err = s.Info(profile.Mode("tetris"))
	assert.ErrorIs(t, err, ErrUnknownMode)

	all := s.AllInfo()
	assert.Len(t, all, len(profile.Modes()))
}

func TestInfo_NoRewardAfterMax(t *testing.T) {
	s, data := setupMastery(t)
	setLevel(t, data, profile.ModeBugBounty, MaxLevel)

	info, err := s.Info(profile.ModeBugBounty)
	require.NoError(t, err)
	assert.Nil(t, info.NextReward)
}

func TestRank(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, "Intern"},
		{99, "Intern"},
		{100, "Junior Developer"},
		{300, "Mid-Level Developer"},
		{500, "Senior Engineer"},
		{700, "Elite Programmer"},
		{899, "Elite Programmer"},
		{900, "Legendary Developer"},
		{1000, "Legendary Developer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankFor(tt.total).Title, "total %d", tt.total)
	}

	s, data := setupMastery(t)
	assert.Equal(t, 10, s.TotalLevel())
	assert.Equal(t, "Intern", s.Rank().Title)

	setLevel(t, data, profile.ModeGitSurvivor, 95)
	assert.Equal(t, 104, s.TotalLevel())
	assert.Equal(t, "Junior Developer", s.Rank().Title)
}

func TestRewardCatalog(t *testing.T) {
	for level := 1; level <= MaxLevel; level++ {
		_, ok := RewardFor(profile.ModeGitSurvivor, level)
		expected := false
		for _, l := range rewardLevels {
			if l == level {
				expected = true
			}
		}
		assert.Equal(t, expected, ok, "level %d", level)
	}
}
