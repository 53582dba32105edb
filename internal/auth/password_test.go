package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist-api/internal/apperr"
)

func TestHashPassword_SaltRandomized(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("12345678")
	require.NoError(t, err)
	second, err := HashPassword("12345678")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "$2"))

	for _, hash := range []string{first, second} {
		ok, err := VerifyPassword("12345678", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("right-password")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := VerifyPassword("anything", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrMalformedHash)
}
