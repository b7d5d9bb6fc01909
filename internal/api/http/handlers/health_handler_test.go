package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/observability"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func readyResponse(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/ready", h.Ready)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		postgres   Pinger
		redis      Pinger
		wantStatus int
		wantDeps   map[string]any
	}{
		{
			name:       "redis disabled",
			postgres:   stubPinger{},
			wantStatus: fiber.StatusOK,
			wantDeps:   map[string]any{"postgres": "ok", "redis": "disabled"},
		},
		{
			name:       "all up",
			postgres:   stubPinger{},
			redis:      stubPinger{},
			wantStatus: fiber.StatusOK,
			wantDeps:   map[string]any{"postgres": "ok", "redis": "ok"},
		},
		{
			name:       "postgres down",
			postgres:   stubPinger{err: errors.New("dial tcp 10.0.0.5:5432: refused")},
			redis:      stubPinger{},
			wantStatus: fiber.StatusServiceUnavailable,
			wantDeps:   map[string]any{"postgres": "unreachable", "redis": "ok"},
		},
		{
			name:       "redis down",
			postgres:   stubPinger{},
			redis:      stubPinger{err: errors.New("timeout")},
			wantStatus: fiber.StatusServiceUnavailable,
			wantDeps:   map[string]any{"postgres": "ok", "redis": "unreachable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("lawfirm-api", "test", tt.postgres, tt.redis, observability.NewMetrics())
			status, body := readyResponse(t, h)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDeps, body["dependencies"])
		})
	}
}
