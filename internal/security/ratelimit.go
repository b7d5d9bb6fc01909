package security

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/observability"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// RateLimitConfig describes one fixed-window limiter.
type RateLimitConfig struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimiter rejects clients that exceed Limit requests per Window, keyed by
// client address.
type RateLimiter struct {
	cfg      RateLimitConfig
	store    WindowStore
	security *observability.SecurityLog
	logger   *zap.Logger
}

// NewRateLimiter builds a limiter over store.
func NewRateLimiter(cfg RateLimitConfig, store WindowStore, security *observability.SecurityLog, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{cfg: cfg, store: store, security: security, logger: logger}
}

// Handle counts the request and short-circuits once the limit is exceeded.
// Store failures let the request through.
func (l *RateLimiter) Handle(c *fiber.Ctx) error {
	count, resetIn, err := l.store.Hit(c.UserContext(), l.cfg.Name+":"+c.IP(), l.cfg.Window)
	if err != nil {
		l.logger.Error("rate limit store unavailable", zap.String("limiter", l.cfg.Name), zap.Error(err))
		return c.Next()
	}

	remaining := l.cfg.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	resetSeconds := strconv.Itoa(int((resetIn + time.Second - 1) / time.Second))
	c.Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Set("X-RateLimit-Reset", resetSeconds)

	if count > l.cfg.Limit {
		c.Set(fiber.HeaderRetryAfter, resetSeconds)
		l.security.RecordRequest(c, observability.EventRateLimitExceeded,
			zap.String("limiter", l.cfg.Name),
			zap.Int("limit", l.cfg.Limit),
			zap.Duration("window", l.cfg.Window),
		)
		return apperrors.NewRateLimited("too many requests from this IP, please try again later", map[string]any{
			"limit":          l.cfg.Limit,
			"window_seconds": int(l.cfg.Window / time.Second),
		})
	}
	return c.Next()
}
