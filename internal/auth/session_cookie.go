package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// loggedOutValue replaces the token on logout and is treated as no token.
const loggedOutValue = "loggedout"

// SessionCookie delivers session tokens as an HTTP-only cookie. The cookie
// lifetime is advisory; the token's own expiry is authoritative.
type SessionCookie struct {
	Name string
	TTL  time.Duration
	now  func() time.Time
}

// NewSessionCookie constructs the cookie writer.
func NewSessionCookie(name string, ttl time.Duration) *SessionCookie {
	return &SessionCookie{Name: name, TTL: ttl, now: time.Now}
}

// Set writes token into the session cookie.
func (s *SessionCookie) Set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(s.TTL),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Clear overwrites the session cookie with a short-lived placeholder.
func (s *SessionCookie) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    loggedOutValue,
		Path:     "/",
		Expires:  s.now().Add(10 * time.Second),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
