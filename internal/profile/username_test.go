package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "frank", NormalizeUsername("  Frank  "))
	assert.Equal(t, "a_b-c", NormalizeUsername("A_B-C"))
}

func TestValidateUsername(t *testing.T) {
	t.Run("Accepts valid usernames", func(t *testing.T) {
		for _, name := range []string{"abc", "frank_herbert", "user-42", "a1_", strings.Repeat("a", 20)} {
			assert.NoError(t, ValidateUsername(name), name)
		}
	})

	t.Run("Rejects bad lengths", func(t *testing.T) {
		assert.ErrorIs(t, ValidateUsername("ab"), ErrInvalidUsername)
		assert.ErrorIs(t, ValidateUsername(strings.Repeat("a", 21)), ErrInvalidUsername)
		assert.ErrorIs(t, ValidateUsername(""), ErrInvalidUsername)
	})

	t.Run("Rejects bad characters", func(t *testing.T) {
		for _, name := range []string{"Frank", "user name", "user.name", "user@site", "héllo"} {
			assert.ErrorIs(t, ValidateUsername(name), ErrInvalidUsername, name)
		}
	})

	t.Run("Rejects reserved handles", func(t *testing.T) {
		for _, name := range []string{"admin", "api", "youreview", "login", "sign-in", "u", "top10", "create", "recap", "onboarding"} {
			assert.ErrorIs(t, ValidateUsername(name), ErrInvalidUsername, name)
		}
	})
}
