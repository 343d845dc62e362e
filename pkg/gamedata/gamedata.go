// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package gamedata owns the player profile document. Every read and write of
// persisted progression goes through a GameData instance.
package gamedata

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/achievement"
	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

// GameData serializes all access to the profile document. Mutations made
// inside Update are applied atomically and saved once.
type GameData struct {
	mu     sync.Mutex
	store  store.Store
	engine *achievement.Engine
	data   *profile.PlayerProfile
}

// Option configures a GameData.
type Option func(*GameData)

// WithAchievementEngine replaces the default achievement rules.
func WithAchievementEngine(engine *achievement.Engine) Option {
	return func(g *GameData) {
		g.engine = engine
	}
}

// New creates a GameData backed by st and loads the stored profile.
func New(ctx context.Context, st store.Store, opts ...Option) (*GameData, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}

	g := &GameData{store: st}
	for _, opt := range opts {
		opt(g)
	}

	if g.engine == nil {
		engine, err := achievement.NewDefaultEngine()
		if err != nil {
			return nil, fmt.Errorf("failed to build achievement engine: %w", err)
		}
		g.engine = engine
	}

	g.Load(ctx)
	return g, nil
}

// Load reads the profile from storage, replacing the in-memory document.
// Any storage or decode failure yields a default profile. The returned
// profile is a copy.
func (g *GameData) Load(ctx context.Context) *profile.PlayerProfile {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.loadLocked(ctx)
	return g.data.Clone()
}

func (g *GameData) loadLocked(ctx context.Context) {
	p, err := g.store.GetProfile(ctx)
	if err != nil {
		logrus.Warnf("could not load game data, using defaults: %v", err)
		metrics.ProfileLoadFallbacksTotal.Inc()
		p = profile.New()
	}
	normalize(p)
	g.data = p
}

// Save persists the current document. Failures are logged and counted but
// never returned: losing a save must not stop a game.
func (g *GameData) Save(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.saveLocked(ctx)
}

func (g *GameData) saveLocked(ctx context.Context) {
	normalize(g.data)
	if err := g.store.SaveProfile(ctx, g.data); err != nil {
		logrus.Warnf("could not save game data: %v", err)
		metrics.ProfileSavesTotal.WithLabelValues("failure").Inc()
		return
	}
	metrics.ProfileSavesTotal.WithLabelValues("success").Inc()
}

// Update runs fn against the live document under the lock. When fn returns
// nil the document is normalized and saved; otherwise every change fn made is
// rolled back and its error returned. fn must not call back into GameData.
func (g *GameData) Update(ctx context.Context, fn func(p *profile.PlayerProfile) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapshot := g.data.Clone()
	if err := fn(g.data); err != nil {
		g.data = snapshot
		return err
	}

	g.saveLocked(ctx)
	return nil
}

// View runs fn against the live document under the lock. fn must not modify
// the profile or keep a reference to it.
func (g *GameData) View(fn func(p *profile.PlayerProfile)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn(g.data)
}

// Profile returns a copy of the current document.
func (g *GameData) Profile() *profile.PlayerProfile {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.data.Clone()
}

// Reset erases the stored document and starts over from defaults.
func (g *GameData) Reset(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.data = profile.New()
	if err := g.store.DeleteProfile(ctx); err != nil {
		logrus.Warnf("could not delete game data, overwriting with defaults: %v", err)
		g.saveLocked(ctx)
		return
	}
	logrus.Infof("game data reset")
}

// normalize applies the document invariants plus the catalog constraint
// on unlocked achievements, which the profile package cannot check.
func normalize(p *profile.PlayerProfile) {
	p.Normalize()

	kept := p.Achievements[:0]
	for _, id := range p.Achievements {
		if achievement.Known(id) {
			kept = append(kept, id)
		} else {
			logrus.Debugf("dropping unknown achievement %q", id)
		}
	}
	p.Achievements = kept
}
