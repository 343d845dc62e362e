// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package gamedata

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

// countingStore counts saves on top of a real store.
type countingStore struct {
	store.Store
	mu    sync.Mutex
	saves int
}

func (c *countingStore) SaveProfile(ctx context.Context, p *profile.PlayerProfile) error {
	c.mu.Lock()
	c.saves++
	c.mu.Unlock()
	return c.Store.SaveProfile(ctx, p)
}

func (c *countingStore) Saves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func setupGameData(t *testing.T) (*GameData, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	st := &countingStore{Store: store.NewRedisStore(client, store.RedisStoreConfig{})}
	g, err := New(context.Background(), st)
	require.NoError(t, err)
	return g, st, mr
}

func TestLoad_EmptyStoreDefaultsEveryCounter(t *testing.T) {
	g, _, _ := setupGameData(t)

	p := g.Load(context.Background())
	for _, mode := range profile.Modes() {
		for _, c := range mode.Counters() {
			v, ok := p.Stats.Get(profile.ModeStat(mode, c))
			assert.True(t, ok)
			assert.Zero(t, v)
		}
	}
	assert.Empty(t, p.Achievements)
}

func TestLoad_CorruptedStorageFallsBack(t *testing.T) {
	g, _, mr := setupGameData(t)
	require.NoError(t, mr.Set(store.DefaultKey, "not-json{{"))

	p := g.Load(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, profile.DifficultyNormal, p.Settings.Difficulty)
	assert.Len(t, p.Stats.Modes, len(profile.Modes()))
}

func TestLoad_UnreachableStorageFallsBack(t *testing.T) {
	g, _, mr := setupGameData(t)
	require.NoError(t, g.UpdateStatPath(context.Background(), "gamesPlayed", 3, "add"))

	mr.Close()

	p := g.Load(context.Background())
	assert.Zero(t, p.Stats.GamesPlayed)
}

func TestLoad_DropsUnknownAchievements(t *testing.T) {
	g, _, mr := setupGameData(t)
	require.NoError(t, mr.Set(store.DefaultKey, `{"achievements":["survivor","made_up"]}`))

	p := g.Load(context.Background())
	assert.Equal(t, []string{"survivor"}, p.Achievements)
}

func TestUnlockAchievement_Idempotent(t *testing.T) {
	g, st, _ := setupGameData(t)
	ctx := context.Background()

	first := g.UnlockAchievement(ctx, "team_player")
	require.NotNil(t, first)
	assert.Equal(t, "Team Player", first.Name)
	saves := st.Saves()

	second := g.UnlockAchievement(ctx, "team_player")
	assert.Nil(t, second)
	assert.Equal(t, saves, st.Saves(), "second unlock must not save")

	assert.Nil(t, g.UnlockAchievement(ctx, "not_in_catalog"))

	p := g.Load(ctx)
	count := 0
	for _, id := range p.Achievements {
		if id == "team_player" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, g.HasAchievement("team_player"))
	assert.Len(t, g.UnlockedAchievements(), 1)
	assert.Len(t, g.Achievements(), 15)
}

func TestUpdateStat_Operations(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	require.NoError(t, g.UpdateStatPath(ctx, "gitSurvivor.enemiesKilled", 5, "add"))
	require.NoError(t, g.UpdateStatPath(ctx, "gitSurvivor.enemiesKilled", 3, "add"))
	assert.Equal(t, 8.0, g.GetStatPath("gitSurvivor.enemiesKilled"))

	require.NoError(t, g.UpdateStatPath(ctx, "gitSurvivor.highScore", 10, "max"))
	require.NoError(t, g.UpdateStatPath(ctx, "gitSurvivor.highScore", 4, "max"))
	assert.Equal(t, 10.0, g.GetStatPath("gitSurvivor.highScore"))

	require.NoError(t, g.UpdateStat(ctx, profile.ModeStat(profile.ModeGitSurvivor, profile.CounterHighScore), 2, OpSet))
	assert.Equal(t, 2.0, g.GetStat(profile.ModeStat(profile.ModeGitSurvivor, profile.CounterHighScore)))

	require.NoError(t, g.UpdateStatPath(ctx, "totalScore", 7, "increment"))
	assert.Equal(t, 7.0, g.GetStatPath("totalScore"))

	// persisted, not just in memory
	p := g.Load(ctx)
	assert.Equal(t, 8.0, p.Stats.Modes[profile.ModeGitSurvivor][profile.CounterEnemiesKilled])
}

func TestUpdateStat_Errors(t *testing.T) {
	g, st, _ := setupGameData(t)
	ctx := context.Background()
	saves := st.Saves()

	assert.ErrorIs(t, g.UpdateStatPath(ctx, "bugBounty.highScore", 1, "add"), profile.ErrUnknownStat)
	assert.ErrorIs(t, g.UpdateStatPath(ctx, "gamesPlayed", 1, "multiply"), ErrUnknownOp)
	assert.ErrorIs(t, g.UpdateStat(ctx, profile.Global(profile.CounterGamesPlayed), 1, Op("nope")), ErrUnknownOp)
	assert.Equal(t, saves, st.Saves())

	assert.Zero(t, g.GetStatPath("no.such"))
}

func TestUpdateStats_AllOrNothing(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	err := g.UpdateStats(ctx, []StatUpdate{
		{Key: profile.Global(profile.CounterGamesPlayed), Value: 1, Op: OpAdd},
		{Key: profile.ModeStat(profile.ModeBugBounty, profile.CounterHighScore), Value: 1, Op: OpAdd},
	})
	assert.ErrorIs(t, err, profile.ErrUnknownStat)
	assert.Zero(t, g.GetStatPath("gamesPlayed"))

	require.NoError(t, g.UpdateStats(ctx, []StatUpdate{
		{Key: profile.Global(profile.CounterGamesPlayed), Value: 1, Op: OpAdd},
		{Key: profile.ModeStat(profile.ModeBugBounty, profile.CounterTotalStars), Value: 3, Op: OpMax},
	}))
	assert.Equal(t, 1.0, g.GetStatPath("gamesPlayed"))
	assert.Equal(t, 3.0, g.GetStatPath("bugBounty.totalStars"))
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := g.Update(ctx, func(p *profile.PlayerProfile) error {
		p.Stats.TotalScore = 999
		p.AddAchievement("hoarder")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p := g.Profile()
	assert.Zero(t, p.Stats.TotalScore)
	assert.Empty(t, p.Achievements)
}

func TestUpdateStat_ConcurrentCallsAreNotLost(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.UpdateStatPath(ctx, "gitSurvivor.enemiesKilled", 1, "add")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50.0, g.GetStatPath("gitSurvivor.enemiesKilled"))
	assert.Equal(t, 50.0, g.Load(ctx).Stats.Modes[profile.ModeGitSurvivor][profile.CounterEnemiesKilled])
}

func TestCheckAchievements_ReturnsOnlyNew(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	require.NoError(t, g.UpdateStatPath(ctx, "gitSurvivor.enemiesKilled", 100, "set"))
	first := g.CheckAchievements(ctx)
	require.Len(t, first, 2)
	assert.Equal(t, "first_blood", first[0].ID)
	assert.Equal(t, "survivor", first[1].ID)

	assert.Empty(t, g.CheckAchievements(ctx))

	require.NoError(t, g.UpdateStatPath(ctx, "gamesPlayed", 50, "set"))
	again := g.CheckAchievements(ctx)
	require.Len(t, again, 1)
	assert.Equal(t, "workaholic", again[0].ID)
}

func TestSave_FailureIsSwallowed(t *testing.T) {
	g, _, mr := setupGameData(t)
	ctx := context.Background()
	mr.Close()

	assert.NotPanics(t, func() { g.Save(ctx) })
	require.NoError(t, g.UpdateStatPath(ctx, "gamesPlayed", 1, "add"))
	assert.Equal(t, 1.0, g.GetStatPath("gamesPlayed"))
}

func TestReset(t *testing.T) {
	g, _, mr := setupGameData(t)
	ctx := context.Background()

	require.NoError(t, g.UpdateStatPath(ctx, "totalScore", 500, "add"))
	require.NotNil(t, g.UnlockAchievement(ctx, "speedrun"))
	require.NoError(t, g.SetDifficulty(ctx, profile.DifficultyNightmare))

	g.Reset(ctx)

	assert.False(t, mr.Exists(store.DefaultKey))
	p := g.Load(ctx)
	assert.Empty(t, p.Achievements)
	assert.Zero(t, p.Stats.TotalScore)
	assert.Equal(t, profile.DifficultyNormal, p.Settings.Difficulty)
}

func TestSettings(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	assert.Equal(t, profile.DifficultyNormal, g.Difficulty())
	assert.ErrorIs(t, g.SetDifficulty(ctx, "impossible"), ErrInvalidDifficulty)
	require.NoError(t, g.SetDifficulty(ctx, profile.DifficultyHard))
	assert.Equal(t, profile.DifficultyHard, g.Difficulty())

	added, err := g.UnlockDifficulty(ctx, profile.DifficultyHard)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = g.UnlockDifficulty(ctx, profile.DifficultyHard)
	require.NoError(t, err)
	assert.False(t, added)

	g.SetSoundEnabled(ctx, false)
	g.SetMusicEnabled(ctx, false)
	s := g.Settings()
	assert.False(t, s.SoundEnabled)
	assert.False(t, s.MusicEnabled)

	p := g.Load(ctx)
	assert.False(t, p.Settings.SoundEnabled)
	assert.Equal(t, profile.DifficultyHard, p.Settings.Difficulty)
}

func TestSelectCosmetic(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	require.NoError(t, g.SelectCosmetic(ctx, profile.CategoryColor, "green"))
	assert.ErrorIs(t, g.SelectCosmetic(ctx, profile.CategorySkin, "ninja"), profile.ErrNotUnlocked)
	assert.Equal(t, "green", g.Profile().Customization.SelectedColor)
	assert.Equal(t, profile.DefaultSkin, g.Profile().Customization.SelectedSkin)
}

func TestEventsAndEasterEggs(t *testing.T) {
	g, _, _ := setupGameData(t)
	ctx := context.Background()

	assert.True(t, g.RecordEvent(ctx, "hackathon"))
	assert.False(t, g.RecordEvent(ctx, "hackathon"))
	assert.True(t, g.HasEvent("hackathon"))

	assert.True(t, g.FindEasterEgg(ctx, "konami"))
	assert.False(t, g.FindEasterEgg(ctx, "konami"))
	assert.False(t, g.FindEasterEgg(ctx, ""))
	assert.True(t, g.HasEasterEgg("konami"))

	assert.True(t, g.Load(ctx).EasterEggs["konami"])
}

func TestProfileIsACopy(t *testing.T) {
	g, _, _ := setupGameData(t)

	p := g.Profile()
	p.Stats.TotalScore = 12345
	p.AddAchievement("hoarder")

	assert.Zero(t, g.GetStatPath("totalScore"))
	assert.False(t, g.HasAchievement("hoarder"))
}
