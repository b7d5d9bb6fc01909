package observability

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SecurityEventKind names a security-relevant occurrence.
type SecurityEventKind string

const (
	EventCSRFTokenMissing     SecurityEventKind = "csrf_token_missing"
	EventCSRFTokenInvalid     SecurityEventKind = "csrf_token_invalid"
	EventRateLimitExceeded    SecurityEventKind = "rate_limit_exceeded"
	EventAuthenticationFailed SecurityEventKind = "authentication_failed"
	EventLoginFailed          SecurityEventKind = "login_failed"
	EventAccessForbidden      SecurityEventKind = "access_forbidden"
	EventSessionSuperseded    SecurityEventKind = "session_superseded"
)

// SecurityLog records security events on a dedicated logger, separate from
// the HTTP response path.
type SecurityLog struct {
	logger  *zap.Logger
	metrics *Metrics
}

// NewSecurityLog wraps logger under the "security" name.
func NewSecurityLog(logger *zap.Logger, metrics *Metrics) *SecurityLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityLog{logger: logger.Named("security"), metrics: metrics}
}

// Record logs an event with arbitrary fields.
func (s *SecurityLog) Record(kind SecurityEventKind, fields ...zap.Field) {
	if s == nil {
		return
	}
	s.metrics.RecordSecurityEvent(kind)
	s.logger.Warn(string(kind), append([]zap.Field{zap.String("event", string(kind))}, fields...)...)
}

// RecordRequest logs an event enriched with request metadata.
func (s *SecurityLog) RecordRequest(c *fiber.Ctx, kind SecurityEventKind, fields ...zap.Field) {
	if s == nil {
		return
	}
	base := []zap.Field{
		zap.String("ip", c.IP()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
	}
	s.Record(kind, append(base, fields...)...)
}
