package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/AccelByte/extend-gitgame-progression/pkg/store"
)

func TestMetricsServer_Endpoints(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	st := store.NewRedisStore(client, store.RedisStoreConfig{})
	m := NewMetricsServer(0, "/metrics", store.NewHealthChecker(st))
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "gitgame_prestiges_total") {
		t.Errorf("metrics output does not include engine collectors")
	}

	tests := []struct {
		name string
		down bool
		want int
	}{
		{name: "storage up", want: http.StatusOK},
		{name: "storage down", down: true, want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.down {
				mr.Close()
			}
			resp, err := http.Get(srv.URL + healthEndpoint)
			if err != nil {
				t.Fatalf("GET %s: %v", healthEndpoint, err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestMetricsServer_NoHealthChecker(t *testing.T) {
	m := NewMetricsServer(0, "/metrics", nil)
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthEndpoint, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSetupTelemetry_Disabled(t *testing.T) {
	shutdown, err := SetupTelemetry(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("SetupTelemetry() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
