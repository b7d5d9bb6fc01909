package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdefghijklmnop"

func newTestTokenManager(t *testing.T, now *time.Time) *TokenManager {
	t.Helper()
	tm := NewTokenManager(testSecret, time.Hour)
	tm.now = func() time.Time { return *now }
	return tm
}

func flipSignatureByte(token string) string {
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	tm := newTestTokenManager(t, &now)

	token, exp, err := tm.Issue("6f1c2f9e-4b7a-4c1e-9a57-0d3c8f1b2a10")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	verified, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "6f1c2f9e-4b7a-4c1e-9a57-0d3c8f1b2a10", verified.SubjectID)
	assert.Equal(t, now.Unix(), verified.IssuedAt.Unix())
	assert.NotEmpty(t, verified.Nonce)
}

func TestTokenManager_NonceDiffersPerIssue(t *testing.T) {
	now := time.Now()
	tm := newTestTokenManager(t, &now)

	first, _, err := tm.Issue("subject")
	require.NoError(t, err)
	second, _, err := tm.Issue("subject")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	v1, err := tm.Verify(first)
	require.NoError(t, err)
	v2, err := tm.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, v1.Nonce, v2.Nonce)
}

func TestTokenManager_VerifyFailures(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	t.Run("flipped signature byte", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		token, _, err := tm.Issue("subject")
		require.NoError(t, err)

		_, err = tm.Verify(flipSignatureByte(token))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		_, err := tm.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("other secret", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		other := NewTokenManager("another-secret-0123456789abcdefghijkl", time.Hour)
		other.now = func() time.Time { return now }
		token, _, err := other.Issue("subject")
		require.NoError(t, err)

		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		token, _, err := tm.Issue("subject")
		require.NoError(t, err)

		now = issuedAt.Add(2 * time.Hour)
		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("issued in the future", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		token, _, err := tm.Issue("subject")
		require.NoError(t, err)

		now = issuedAt.Add(-10 * time.Minute)
		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("algorithm confusion rejected", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing expiry rejected", func(t *testing.T) {
		now := issuedAt
		tm := newTestTokenManager(t, &now)
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "subject",
			IssuedAt: jwt.NewNumericDate(now),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestNewTokenManager_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { NewTokenManager("", time.Hour) })
}
