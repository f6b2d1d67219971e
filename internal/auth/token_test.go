package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestIssuer(secret string) (*TokenIssuer, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewTokenIssuer(TokenConfig{Secret: secret, Now: clock.Now}), clock
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer, _ := newTestIssuer("super-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenIssuer_Header(t *testing.T) {
	issuer, _ := newTestIssuer("super-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)

	var header map[string]string
	require.NoError(t, json.Unmarshal(raw, &header))
	assert.Equal(t, "HS256", header["alg"])
	assert.Equal(t, "JWT", header["typ"])

	raw, err = base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "user-123", payload["userId"])
	assert.Contains(t, payload, "iat")
	assert.Contains(t, payload, "exp")
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer, clock := newTestIssuer("super-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	clock.now = clock.now.Add(TokenTTL - time.Minute)
	_, err = issuer.Verify(token)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_NotYetValid(t *testing.T) {
	issuer, clock := newTestIssuer("super-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	clock.now = clock.now.Add(-time.Hour)
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Tampered(t *testing.T) {
	issuer, _ := newTestIssuer("super-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	// flip one byte inside the payload segment
	pos := strings.Index(token, ".") + 5
	b := []byte(token)
	if b[pos] == 'A' {
		b[pos] = 'B'
	} else {
		b[pos] = 'A'
	}

	_, err = issuer.Verify(string(b))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer, _ := newTestIssuer("right-secret")
	other, _ := newTestIssuer("wrong-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer, _ := newTestIssuer("super-secret")

	for _, token := range []string{"", "not.a.jwt", "Bearer abc"} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenIssuer_MissingSecretFailsClosed(t *testing.T) {
	issuer, _ := newTestIssuer("")

	_, err := issuer.Issue("user-123")
	require.ErrorIs(t, err, ErrMissingSecret)

	signer, _ := newTestIssuer("super-secret")
	token, err := signer.Issue("user-123")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrMissingSecret)
}
