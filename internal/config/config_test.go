package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	t.Run("secret required", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewJWTConfig()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, "test-secret", cfg.Secret)
		assert.Equal(t, 24, cfg.ExpirationHours)
	})

	t.Run("explicit expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "72")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 72, cfg.ExpirationHours)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		for _, bad := range []string{"0", "-1", "not-a-number"} {
			t.Setenv("JWT_EXPIRATION_HOURS", bad)
			_, err := NewJWTConfig()
			assert.Error(t, err, "JWT_EXPIRATION_HOURS=%s", bad)
		}
	})
}

func TestNewPasswordConfig(t *testing.T) {
	t.Run("default cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "")
		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.BcryptCost)
	})

	t.Run("rejects out-of-range cost", func(t *testing.T) {
		for _, bad := range []string{"3", "32", "abc"} {
			t.Setenv("BCRYPT_COST", bad)
			_, err := NewPasswordConfig()
			assert.Error(t, err, "BCRYPT_COST=%s", bad)
		}
	})
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	// Minimum cost keeps the test fast; hashing behavior is the same.
	cfg := &PasswordConfig{BcryptCost: 4}

	hash, err := cfg.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, cfg.VerifyPassword("secret123", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
	assert.False(t, cfg.VerifyPassword("secret123", "not-a-bcrypt-hash"))
}

func TestPasswordConfig_HashesAreSalted(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 4}

	first, err := cfg.HashPassword("secret123")
	require.NoError(t, err)
	second, err := cfg.HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("secret123", first))
	assert.True(t, cfg.VerifyPassword("secret123", second))
}
