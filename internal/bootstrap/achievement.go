// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/achievement"
)

// InitAchievementEngine builds the achievement rule engine. An empty path
// selects the built-in threshold rules; otherwise the YAML rule file
// replaces them.
//
// Custom rule types must be registered with achievement.RegisterRuleType
// before this is called.
func InitAchievementEngine(path string) (*achievement.Engine, error) {
	if path == "" {
		engine, err := achievement.NewDefaultEngine()
		if err != nil {
			return nil, fmt.Errorf("failed to build default achievement rules: %w", err)
		}
		logrus.Infof("using %d built-in achievement rules", engine.GetRegistry().Count())
		return engine, nil
	}

	cfg, err := achievement.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	registry := achievement.NewRegistry()
	if err := achievement.RegisterRules(registry, cfg.Rules); err != nil {
		return nil, fmt.Errorf("failed to register achievement rules: %w", err)
	}
	logrus.Infof("loaded achievement rules from %s", path)

	return achievement.NewEngine(registry), nil
}
