// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/internal/bootstrap"
	"github.com/AccelByte/extend-gitgame-progression/internal/config"
	"github.com/AccelByte/extend-gitgame-progression/internal/server"
	"github.com/AccelByte/extend-gitgame-progression/pkg/gamedata"
	"github.com/AccelByte/extend-gitgame-progression/pkg/mastery"
	"github.com/AccelByte/extend-gitgame-progression/pkg/pets"
	"github.com/AccelByte/extend-gitgame-progression/pkg/prestige"
	"github.com/AccelByte/extend-gitgame-progression/pkg/session"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	storage           bootstrap.Storage
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error

	data     *gamedata.GameData
	mastery  *mastery.System
	prestige *prestige.System
	pets     *pets.System
	recorder *session.Recorder
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
//  1. Profile storage (Redis or SQLite)
//  2. Achievement rules
//  3. Game data (loads and normalizes the stored profile)
//  4. Progression systems (mastery, prestige, pets, session recorder)
//  5. Metrics and health server
//  6. Telemetry
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	storage, err := bootstrap.InitStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	app.storage = storage

	engine, err := bootstrap.InitAchievementEngine(cfg.AchievementRulesPath)
	if err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to init achievement engine: %w", err)
	}

	data, err := gamedata.New(ctx, storage, gamedata.WithAchievementEngine(engine))
	if err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}
	app.data = data

	app.mastery = mastery.New(data)
	app.prestige = prestige.New(data)
	app.pets = pets.New(data)
	app.recorder = session.NewRecorder(data, app.mastery, app.prestige, app.pets, session.Config{
		XPRate:       cfg.SessionXPRate,
		ComboTimeout: cfg.ComboTimeout(),
	})

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics", store.NewHealthChecker(storage))
	if err := app.metricsServer.Setup(); err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	shutdownTelemetry, err := server.SetupTelemetry(ctx, server.TelemetryConfig{
		Enabled:        cfg.OtelEnabled,
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		ZipkinEndpoint: cfg.ZipkinEndpoint,
	})
	if err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	logrus.Info("application initialized successfully")

	return app, nil
}

// GameData returns the shared profile owner.
func (a *App) GameData() *gamedata.GameData { return a.data }

func (a *App) Mastery() *mastery.System { return a.mastery }

func (a *App) Prestige() *prestige.System { return a.prestige }

func (a *App) Pets() *pets.System { return a.pets }

// Recorder returns the end-of-game recorder.
func (a *App) Recorder() *session.Recorder { return a.recorder }

func (a *App) closeStorage() {
	if a.storage == nil {
		return
	}
	if err := a.storage.Close(); err != nil {
		logrus.Errorf("storage close error: %v", err)
	}
	a.storage = nil
}
