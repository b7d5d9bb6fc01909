package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// UserLookup resolves a token subject to its stored account.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware authenticates requests from a bearer header or the session
// cookie and attaches the caller's Identity.
type AuthMiddleware struct {
	tokens     *TokenManager
	users      UserLookup
	cookieName string
	security   *observability.SecurityLog
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users UserLookup, cookieName string, security *observability.SecurityLog) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, cookieName: cookieName, security: security}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.Authenticate(c)
	if err != nil {
		kind := observability.EventAuthenticationFailed
		if errors.Is(err, apperrors.NewSessionSuperseded()) {
			kind = observability.EventSessionSuperseded
		}
		m.security.RecordRequest(c, kind, zap.String("reason", apperrors.ToDomainError(err).Code))
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional attaches the caller's Identity when a valid token is present and
// otherwise continues anonymously. Used on public reads whose result depends
// on the caller's role.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if ExtractToken(c, m.cookieName) == "" {
		return c.Next()
	}
	if identity, err := m.Authenticate(c); err == nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

// Authenticate walks token extraction, verification and identity resolution,
// failing at the first step that does not hold.
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) (*domain.Identity, error) {
	raw := ExtractToken(c, m.cookieName)
	if raw == "" {
		return nil, apperrors.NewUnauthenticated("you are not logged in, please log in to get access")
	}

	verified, err := m.tokens.Verify(raw)
	if err != nil {
		return nil, tokenError(err)
	}

	if _, err := uuid.Parse(verified.SubjectID); err != nil {
		return nil, apperrors.NewBadRequest("malformed token subject")
	}

	user, err := m.users.GetByID(c.UserContext(), verified.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("the user belonging to this token no longer exists")
		}
		return nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, apperrors.NewUnauthenticated("account is deactivated")
	}

	if user.ChangedPasswordAfter(verified.IssuedAt) {
		return nil, apperrors.NewSessionSuperseded()
	}

	return domain.NewIdentity(user), nil
}

// ExtractToken returns the bearer token, falling back to the session cookie.
func ExtractToken(c *fiber.Ctx, cookieName string) string {
	if token, ok := BearerToken(c); ok {
		return token
	}
	token := strings.TrimSpace(c.Cookies(cookieName))
	if token == loggedOutValue {
		return ""
	}
	return token
}

// BearerToken reports the token carried in the Authorization header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewTokenExpired()
	case errors.Is(err, ErrTokenNotYetValid):
		return apperrors.NewTokenNotYetValid()
	default:
		return apperrors.NewTokenInvalid()
	}
}
