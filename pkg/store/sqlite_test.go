// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gitgame.db")
	s, err := OpenSQLite(path, "")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  ", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	got, err := s.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if len(got.Achievements) != 0 {
		t.Errorf("new profile has achievements: %v", got.Achievements)
	}

	p := profile.New()
	p.AddAchievement("boss_slayer")
	p.Mastery[profile.ModeBugBounty] = profile.MasteryProgress{Level: 7, XP: 12}

	// second save must overwrite the first row
	for i := 0; i < 2; i++ {
		if err := s.SaveProfile(ctx, p); err != nil {
			t.Fatalf("SaveProfile() error = %v", err)
		}
		p.Prestige.Level++
	}

	got, err = s.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if !got.HasAchievement("boss_slayer") {
		t.Error("expected boss_slayer to be unlocked")
	}
	if got.MasteryOf(profile.ModeBugBounty) != (profile.MasteryProgress{Level: 7, XP: 12}) {
		t.Errorf("bugBounty mastery = %+v", got.MasteryOf(profile.ModeBugBounty))
	}
	if got.Prestige.Level != 1 {
		t.Errorf("Prestige.Level = %d, expected 1", got.Prestige.Level)
	}

	var rows int
	if err := s.sqlDB.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, expected 1", rows)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitgame.db")
	ctx := context.Background()

	s, err := OpenSQLite(path, "player")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	p := profile.New()
	p.Stats.TotalScore = 4200
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenSQLite(path, "player")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	got, err := s.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Stats.TotalScore != 4200 {
		t.Errorf("TotalScore = %v, expected 4200", got.Stats.TotalScore)
	}
}

func TestSQLiteStore_CorruptedAndDelete(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if _, err := s.sqlDB.Exec(upsertProfile, DefaultKey, "][", "now"); err != nil {
		t.Fatalf("seed corrupted row: %v", err)
	}

	if _, err := s.GetProfile(ctx); !errors.Is(err, ErrCorruptProfile) {
		t.Errorf("GetProfile() error = %v, expected ErrCorruptProfile", err)
	}

	if err := s.DeleteProfile(ctx); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if _, err := s.GetProfile(ctx); err != nil {
		t.Errorf("GetProfile() after delete error = %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
