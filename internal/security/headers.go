package security

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
)

// CORS allows the configured front-end origin(s) to call the API with
// credentials. A wildcard origin disables credentials.
func CORS(origin string) fiber.Handler {
	origin = strings.TrimSpace(origin)
	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + CSRFHeaderName + ", " + CSRFAltHeaderName,
		ExposeHeaders:    CSRFHeaderName + ", X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		AllowCredentials: origin != "*",
		MaxAge:           600,
	})
}

// SecureHeaders sets the standard hardening headers.
func SecureHeaders(production bool) fiber.Handler {
	cfg := helmet.Config{
		ContentSecurityPolicy:     "default-src 'self'; frame-ancestors 'none'",
		CrossOriginResourcePolicy: "same-site",
		ReferrerPolicy:            "no-referrer",
	}
	if production {
		cfg.HSTSMaxAge = 31536000
		cfg.HSTSPreloadEnabled = true
	}
	return helmet.New(cfg)
}
