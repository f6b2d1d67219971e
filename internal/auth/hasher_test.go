package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{"simple", "pw1"},
		{"complex", "P@ssw0rd!#$%^&*()"},
		{"unicode", "пароль🔒"},
		{"whitespace", "  spaced  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.NotEqual(t, tt.password, digest)

			ok, err := h.Verify(tt.password, digest)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify(tt.password+"x", digest)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBcryptHasher_SaltedDigestsDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	for _, digest := range []string{first, second} {
		ok, err := h.Verify("same-password", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	digest, err := NewBcryptHasher(PasswordCost).Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	// out of range falls back to the default
	assert.Equal(t, PasswordCost, NewBcryptHasher(100).cost)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-hash", "$2a$10$short"} {
		ok, err := h.Verify("pw1", digest)
		assert.False(t, ok)
		assert.Error(t, err, "digest %q", digest)
	}
}
