// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the Prometheus collectors of the progression engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gitgame"

var (
	ProfileSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_saves_total",
			Help:      "Profile save attempts by outcome",
		},
		[]string{"outcome"},
	)

	ProfileLoadFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_load_fallbacks_total",
			Help:      "Loads that fell back to a default profile because storage failed",
		},
	)

	AchievementsUnlockedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked",
		},
		[]string{"achievement_id"},
	)

	MasteryLevelUpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mastery_level_ups_total",
			Help:      "Mastery levels gained per mode",
		},
		[]string{"mode"},
	)

	PrestigesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prestiges_total",
			Help:      "Successful prestige resets",
		},
	)

	PerkPurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "perk_purchases_total",
			Help:      "Perk purchase attempts by perk and outcome",
		},
		[]string{"perk_id", "outcome"},
	)

	ComboMilestonesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "combo_milestones_total",
			Help:      "Combo milestones reached",
		},
		[]string{"milestone"},
	)

	GamesRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_recorded_total",
			Help:      "Finished games recorded per mode",
		},
		[]string{"mode"},
	)

	PetsUnlockedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pets_unlocked_total",
			Help:      "Pets unlocked",
		},
		[]string{"pet_id"},
	)
)

// Collectors returns every engine collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ProfileSavesTotal,
		ProfileLoadFallbacksTotal,
		AchievementsUnlockedTotal,
		MasteryLevelUpsTotal,
		PrestigesTotal,
		PerkPurchasesTotal,
		ComboMilestonesTotal,
		GamesRecordedTotal,
		PetsUnlockedTotal,
	}
}

// Register adds the engine collectors to registry.
func Register(registry prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
