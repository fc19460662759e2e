package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "LAB-ABC123", NormalizeCode("  lab-abc123 "))
	assert.Equal(t, "WELCOME", NormalizeCode("welcome"))
}

func TestIsValidCode(t *testing.T) {
	assert.True(t, isValidCode("LAB-ABC123"))
	assert.True(t, isValidCode("2024"))
	assert.False(t, isValidCode("abc"))
	assert.False(t, isValidCode("AB"))
	assert.False(t, isValidCode("LAB_ABC"))
	assert.False(t, isValidCode(strings.Repeat("A", 33)))
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, "LAB-"))
		assert.Len(t, code, 12)
		assert.True(t, isValidCode(code))
		seen[code] = true
	}
	// 8 chars from a 32-symbol alphabet; collisions across 32 draws would
	// point at a broken generator.
	assert.Greater(t, len(seen), 30)
}
