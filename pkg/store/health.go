// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthChecker provides storage health check functionality
type HealthChecker struct {
	backend Pinger
	timeout time.Duration
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(backend Pinger) *HealthChecker {
	return &HealthChecker{backend: backend, timeout: 2 * time.Second}
}

// Check pings the storage backend
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.backend.Ping(ctx); err != nil {
		logrus.Errorf("storage health check failed: %v", err)
		return err
	}

	logrus.Debugf("storage health check passed")
	return nil
}

// IsHealthy returns true if storage is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
