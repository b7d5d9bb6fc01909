package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityLog_RecordRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := NewMetrics()
	sec := NewSecurityLog(zap.New(core), metrics)

	app := fiber.New()
	app.Post("/api/v1/things", func(c *fiber.Ctx) error {
		sec.RecordRequest(c, EventCSRFTokenMissing, zap.String("reason", "no header"))
		return c.SendStatus(fiber.StatusForbidden)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/things", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	entries := logs.Filter(func(e observer.LoggedEntry) bool { return e.LoggerName == "security" }).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "csrf_token_missing", fields["event"])
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/v1/things", fields["path"])
	assert.Equal(t, "no header", fields["reason"])

	assert.Equal(t, int64(1), metrics.Snapshot().SecurityEvents["csrf_token_missing"])
}

func TestSecurityLog_NilSafe(t *testing.T) {
	var sec *SecurityLog
	assert.NotPanics(t, func() { sec.Record(EventLoginFailed) })

	var m *Metrics
	assert.NotPanics(t, func() { m.RecordSecurityEvent(EventLoginFailed) })
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger_CountsRequests(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, int64(2), metrics.Snapshot().Requests["/ping|GET|200"])
	assert.Equal(t, 2, logs.FilterMessage("request").Len())
}
