package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	for _, p := range []string{"secret123", "pässwörd", " ", strings.Repeat("x", 72)} {
		h, err := HashPassword(p, bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotContains(t, h, p)
		assert.True(t, VerifyPassword(h, p), "password %q should verify", p)
	}
}

func TestHashPassword_DistinctPasswordsDoNotVerify(t *testing.T) {
	h, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, VerifyPassword(h, "secret124"))
	assert.False(t, VerifyPassword(h, ""))
	assert.False(t, VerifyPassword(h, "SECRET123"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "secret123"))
	assert.True(t, VerifyPassword(h2, "secret123"))
}

func TestHashPassword_EmbedsCost(t *testing.T) {
	h, err := HashPassword("secret123", 5)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret123"))
	assert.False(t, VerifyPassword("", ""))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestVerifyPassword_RejectsSuffixBeyondLimit(t *testing.T) {
	p := strings.Repeat("a", MaxPasswordBytes)
	h, err := HashPassword(p, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(h, p))
	assert.False(t, VerifyPassword(h, p+"DIFFERENT-SUFFIX"))
	assert.False(t, VerifyPassword(h, p+"a"))
}
