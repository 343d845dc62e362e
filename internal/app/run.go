// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Run starts the application and blocks until a shutdown signal is received
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	logrus.Info("application started successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops components in reverse dependency order: the metrics server
// first, then storage, then telemetry. Errors are logged and do not stop the
// sequence.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	a.closeStorage()

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
