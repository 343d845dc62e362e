// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/mastery"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

// This is a manual integration test for the Redis profile store.
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis running on localhost:6379

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client, err := store.NewRedisClient(ctx, store.RedisClientConfig{
		Host:       "localhost",
		Port:       "6379",
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}

	key := fmt.Sprintf("gitgame_test_%d", time.Now().Unix())
	st := store.NewRedisStore(client, store.RedisStoreConfig{Key: key, TTL: time.Hour})
	defer st.Close()
	logrus.Infof("Testing with key: %s", key)

	logrus.Infof("\n=== Test 1: Load defaults for a missing document ===")
	data, err := gamedata.New(ctx, st)
	if err != nil {
		logrus.Fatalf("gamedata.New failed: %v", err)
	}
	if got := data.Profile().Pets.Selected; got != profile.DefaultPet {
		logrus.Fatalf("❌ selected pet: got %s, expected %s", got, profile.DefaultPet)
	}
	logrus.Infof("✓ Got default profile")

	logrus.Infof("\n=== Test 2: Update stats and mastery ===")
	if err := data.UpdateStats(ctx, []gamedata.StatUpdate{
		{Key: profile.Global(profile.CounterGamesPlayed), Value: 1, Op: gamedata.OpIncrement},
		{Key: profile.ModeStat(profile.ModeGitSurvivor, profile.CounterEnemiesKilled), Value: 12, Op: gamedata.OpAdd},
	}); err != nil {
		logrus.Fatalf("UpdateStats failed: %v", err)
	}
	result, err := mastery.New(data).AddXP(ctx, profile.ModeGitSurvivor, 250)
	if err != nil {
		logrus.Fatalf("AddXP failed: %v", err)
	}
	logrus.Infof("✓ Mastery level %d, %v XP carried", result.NewLevel, result.CurrentXP)

	logrus.Infof("\n=== Test 3: Reload from Redis ===")
	reloaded, err := gamedata.New(ctx, st)
	if err != nil {
		logrus.Fatalf("reload failed: %v", err)
	}
	if got := reloaded.GetStatPath("gitSurvivor.enemiesKilled"); got != 12 {
		logrus.Fatalf("❌ enemiesKilled mismatch: got %v, expected 12", got)
	}
	if got := reloaded.Profile().MasteryOf(profile.ModeGitSurvivor).Level; got != result.NewLevel {
		logrus.Fatalf("❌ mastery level mismatch: got %d, expected %d", got, result.NewLevel)
	}
	logrus.Infof("✓ Reloaded profile matches")

	logrus.Infof("\n=== Test 4: TTL is applied ===")
	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		logrus.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 {
		logrus.Fatalf("❌ expected a positive TTL, got %v", ttl)
	}
	logrus.Infof("✓ TTL: %v", ttl)

	logrus.Infof("\n=== Test 5: Reset ===")
	reloaded.Reset(ctx)
	n, err := client.Exists(ctx, key).Result()
	if err != nil {
		logrus.Fatalf("Exists failed: %v", err)
	}
	if n != 0 {
		logrus.Fatalf("❌ document still present after reset")
	}
	logrus.Infof("✓ Document removed")

	logrus.Infof("\n✅ All Redis integration tests passed!")
}
