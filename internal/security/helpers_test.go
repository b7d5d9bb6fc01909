package security

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/lawfirm-api/internal/observability"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"status": "error", "code": de.Code})
		},
	})
}

func newObservedSecurityLog() (*observability.SecurityLog, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return observability.NewSecurityLog(zap.New(core), observability.NewMetrics()), logs
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
