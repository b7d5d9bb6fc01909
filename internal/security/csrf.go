package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"

	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

const (
	CSRFCookieName     = "XSRF-TOKEN"
	CSRFHeaderName     = "X-CSRF-Token"
	CSRFAltHeaderName  = "X-XSRF-Token"
	CSRFBodyField      = "_csrf"
	DefaultCSRFMaxAge  = time.Hour
	csrfNonceBytes     = 16
	csrfKeyInfo        = "lawfirm-api csrf v1"
	csrfPayloadBytes   = 8 + csrfNonceBytes
	minCSRFSecretBytes = 16
)

var errMalformedCSRFToken = errors.New("malformed csrf token")

// CSRFGuard issues and verifies stateless anti-forgery tokens. A token is a
// timestamped random nonce followed by its HMAC under a key derived from the
// process secret, so verification needs no server-side store.
type CSRFGuard struct {
	key      []byte
	enabled  bool
	maxAge   time.Duration
	security *observability.SecurityLog
	now      func() time.Time
}

// NewCSRFGuard derives the signing key from secret.
func NewCSRFGuard(secret []byte, enabled bool, security *observability.SecurityLog) (*CSRFGuard, error) {
	if len(secret) < minCSRFSecretBytes {
		return nil, errors.New("csrf secret too short")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(csrfKeyInfo)), key); err != nil {
		return nil, err
	}
	return &CSRFGuard{
		key:      key,
		enabled:  enabled,
		maxAge:   DefaultCSRFMaxAge,
		security: security,
		now:      time.Now,
	}, nil
}

// NewToken mints a token.
func (g *CSRFGuard) NewToken() (string, error) {
	payload := make([]byte, csrfPayloadBytes)
	binary.BigEndian.PutUint64(payload[:8], uint64(g.now().Unix()))
	if _, err := rand.Read(payload[8:]); err != nil {
		return "", err
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(payload) + "." + enc.EncodeToString(g.sign(payload)), nil
}

// Check verifies the signature and age of token.
func (g *CSRFGuard) Check(token string) error {
	encPayload, encMAC, ok := strings.Cut(token, ".")
	if !ok {
		return errMalformedCSRFToken
	}
	enc := base64.RawURLEncoding
	payload, err := enc.DecodeString(encPayload)
	if err != nil || len(payload) != csrfPayloadBytes {
		return errMalformedCSRFToken
	}
	mac, err := enc.DecodeString(encMAC)
	if err != nil {
		return errMalformedCSRFToken
	}
	if !hmac.Equal(mac, g.sign(payload)) {
		return errors.New("csrf signature mismatch")
	}
	issued := time.Unix(int64(binary.BigEndian.Uint64(payload[:8])), 0)
	if age := g.now().Sub(issued); age > g.maxAge || age < -time.Minute {
		return errors.New("csrf token expired")
	}
	return nil
}

func (g *CSRFGuard) sign(payload []byte) []byte {
	m := hmac.New(sha256.New, g.key)
	m.Write(payload)
	return m.Sum(nil)
}

// Issue mints a token, sets it as a script-readable cookie and mirrors it into
// the response header.
func (g *CSRFGuard) Issue(c *fiber.Ctx) (string, error) {
	token, err := g.NewToken()
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.maxAge / time.Second),
		HTTPOnly: false,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	c.Set(CSRFHeaderName, token)
	return token, nil
}

// TokenHandler serves GET /csrf-token.
func (g *CSRFGuard) TokenHandler(c *fiber.Ctx) error {
	token, err := g.Issue(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"csrfToken": token},
	})
}

// Verify rejects unsafe requests that do not carry a valid token. Safe
// methods and bearer-authenticated requests pass untouched, since browsers
// never attach an Authorization header cross-site on their own.
func (g *CSRFGuard) Verify(c *fiber.Ctx) error {
	if !g.enabled || isSafeMethod(c.Method()) {
		return c.Next()
	}
	if _, ok := auth.BearerToken(c); ok {
		return c.Next()
	}

	token := csrfTokenFromRequest(c)
	if token == "" {
		g.security.RecordRequest(c, observability.EventCSRFTokenMissing)
		return apperrors.NewCSRFTokenMissing()
	}
	if err := g.Check(token); err != nil {
		g.security.RecordRequest(c, observability.EventCSRFTokenInvalid, zap.String("reason", err.Error()))
		return apperrors.NewCSRFTokenInvalid()
	}
	return c.Next()
}

func isSafeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

func csrfTokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Get(CSRFHeaderName)); token != "" {
		return token
	}
	if token := strings.TrimSpace(c.Get(CSRFAltHeaderName)); token != "" {
		return token
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var body struct {
			Token string `json:"_csrf"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			return strings.TrimSpace(body.Token)
		}
		return ""
	}
	return strings.TrimSpace(c.FormValue(CSRFBodyField))
}
