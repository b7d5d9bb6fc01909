package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/api/http/handlers"
	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	"github.com/spec-kit/lawfirm-api/internal/security"
)

// Options carries the server-level settings the HTTP layer reads.
type Options struct {
	AppName        string
	Production     bool
	CORSOrigin     string
	BodyLimit      int
	RequestTimeout time.Duration
	GlobalLimit    security.RateLimitConfig
	AuthLimit      security.RateLimitConfig
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Security       *observability.SecurityLog
	RateStore      security.WindowStore
	CSRF           *security.CSRFGuard
	AuthMiddleware *auth.AuthMiddleware

	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Clients       *handlers.ClientsHandler
	Cases         *handlers.CasesHandler
	Appointments  *handlers.AppointmentsHandler
	Blog          *handlers.BlogHandler
	Contacts      *handlers.ContactsHandler
	PracticeAreas *handlers.ContentHandler
	Team          *handlers.ContentHandler
	HomeCards     *handlers.ContentHandler
}

// NewApp builds the fiber application with the full middleware chain and
// every route registered.
func NewApp(opts Options, cfg RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		BodyLimit:    opts.BodyLimit,
		Immutable:    true,
		ErrorHandler: ErrorHandler(cfg.Logger, opts.Production),
	})
	RegisterMiddlewares(app, cfg.Logger, cfg.Metrics, opts.RequestTimeout, opts.Production)
	RegisterRoutes(app, opts, cfg)
	return app
}

// RegisterRoutes wires HTTP routes. Under /api the order is rate limiter,
// CORS, security headers, sanitizer, CSRF guard, then per-route auth and
// role checks.
func RegisterRoutes(app *fiber.App, opts Options, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	globalLimiter := security.NewRateLimiter(opts.GlobalLimit, cfg.RateStore, cfg.Security, cfg.Logger)
	authLimiter := security.NewRateLimiter(opts.AuthLimit, cfg.RateStore, cfg.Security, cfg.Logger)

	api := app.Group("/api", globalLimiter.Handle)
	api.Use(security.CORS(opts.CORSOrigin))
	api.Use(security.SecureHeaders(opts.Production))
	api.Use(security.Sanitizer(cfg.Logger))
	api.Use(cfg.CSRF.Verify)

	v1 := api.Group("/v1")
	v1.Get("/csrf-token", cfg.CSRF.TokenHandler)

	authn := cfg.AuthMiddleware.Handle
	optional := cfg.AuthMiddleware.Optional
	restrict := func(roles ...domain.Role) fiber.Handler {
		return auth.RestrictTo(cfg.Security, roles...)
	}
	admin := restrict(domain.RoleAdmin)

	authGroup := v1.Group("/auth", authLimiter.Handle)
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/logout", cfg.Auth.Logout)
	authGroup.Post("/refresh-token", authn, cfg.Auth.Refresh)
	authGroup.Get("/me", authn, cfg.Auth.Me)
	authGroup.Patch("/update-password", authn, cfg.Auth.UpdatePassword)

	clients := v1.Group("/clients", authn)
	clients.Get("/", cfg.Clients.List)
	clients.Post("/", cfg.Clients.Create)
	clients.Get("/:id", cfg.Clients.Get)
	clients.Patch("/:id", cfg.Clients.Update)
	clients.Delete("/:id", admin, cfg.Clients.Delete)

	cases := v1.Group("/cases", authn)
	cases.Get("/", cfg.Cases.List)
	cases.Post("/", cfg.Cases.Create)
	cases.Get("/:id", cfg.Cases.Get)
	cases.Patch("/:id", cfg.Cases.Update)
	cases.Delete("/:id", admin, cfg.Cases.Delete)

	appointments := v1.Group("/appointments", authn)
	appointments.Get("/upcoming", cfg.Appointments.Upcoming)
	appointments.Get("/", cfg.Appointments.List)
	appointments.Post("/", cfg.Appointments.Create)
	appointments.Get("/:id", cfg.Appointments.Get)
	appointments.Patch("/:id/status", cfg.Appointments.UpdateStatus)
	appointments.Patch("/:id", cfg.Appointments.Update)
	appointments.Delete("/:id", cfg.Appointments.Delete)

	editors := restrict(domain.RoleAdmin, domain.RoleAttorney)
	blog := v1.Group("/blog", optional)
	blog.Get("/", cfg.Blog.List)
	blog.Get("/:id", cfg.Blog.Get)
	blog.Post("/upload-image", authn, editors, cfg.Blog.UploadImage)
	blog.Post("/", authn, editors, cfg.Blog.Create)
	blog.Patch("/:id", authn, editors, cfg.Blog.Update)
	blog.Delete("/:id", authn, editors, cfg.Blog.Delete)

	triage := restrict(domain.RoleAdmin, domain.RoleStaff)
	v1.Post("/contacts", cfg.Contacts.Submit)
	v1.Get("/contacts", authn, triage, cfg.Contacts.List)
	v1.Get("/contacts/:id", authn, triage, cfg.Contacts.Get)
	v1.Patch("/contacts/:id", authn, triage, cfg.Contacts.Update)
	v1.Delete("/contacts/:id", authn, triage, cfg.Contacts.Delete)

	for path, h := range map[string]*handlers.ContentHandler{
		"/practice-areas": cfg.PracticeAreas,
		"/team":           cfg.Team,
		"/home-cards":     cfg.HomeCards,
	} {
		group := v1.Group(path, optional)
		group.Get("/", h.List)
		group.Get("/:id", h.Get)
		group.Post("/upload-image", authn, admin, h.UploadImage)
		group.Post("/", authn, admin, h.Create)
		group.Patch("/:id", authn, admin, h.Update)
		group.Delete("/:id", authn, admin, h.Delete)
	}
}
