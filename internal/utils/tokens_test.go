package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomToken(t *testing.T) {
	first, err := GenerateRandomToken(32)
	require.NoError(t, err)
	second, err := GenerateRandomToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 32 bytes of base64url without padding
	assert.Len(t, first, 43)
	assert.NotContains(t, first, "=")
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
}

func TestGenerateNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "got %q", code)
		}
	}
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.NotEqual(t, "abc", HashToken("abc"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "user@example.com", NormalizeEmail("user@example.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
