// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-gitgame-progression/pkg/metrics"
	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

const healthEndpoint = "/healthz"

// MetricsServer serves Prometheus metrics and the storage health probe.
type MetricsServer struct {
	server   *http.Server
	port     int
	endpoint string
	health   *store.HealthChecker
}

// NewMetricsServer creates a new metrics server instance. health may be nil,
// in which case the probe always reports ok.
func NewMetricsServer(port int, endpoint string, health *store.HealthChecker) *MetricsServer {
	return &MetricsServer{
		port:     port,
		endpoint: endpoint,
		health:   health,
	}
}

// Setup registers the runtime and engine collectors and builds the handler.
func (m *MetricsServer) Setup() error {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register engine metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(m.endpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc(healthEndpoint, m.handleHealth)

	m.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", m.port),
		Handler: mux,
	}

	return nil
}

func (m *MetricsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if m.health == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := m.health.Check(r.Context()); err != nil {
		logrus.Warnf("health check failed: %v", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Handler returns the configured handler. Setup must be called first.
func (m *MetricsServer) Handler() http.Handler {
	return m.server.Handler
}

// Start begins serving metrics on the configured port.
func (m *MetricsServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("metrics server listening on port %d%s", m.port, m.endpoint)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("metrics server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down metrics server...")
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("metrics server stopped")
	return nil
}
