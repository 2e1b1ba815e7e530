package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docuchat/internal/config"
	"github.com/jonathan/docuchat/internal/types"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests",
		ExpirationHours: 1,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID, types.RoleRegularUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, types.RoleRegularUser, claims.GetRole())
}

func TestJWTService_AdminRoleCarried(t *testing.T) {
	service := newTestJWTService()

	token, err := service.GenerateToken(uuid.New(), types.RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, claims.GetRole())
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := newTestJWTService()

	t.Run("empty token", func(t *testing.T) {
		_, err := service.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
		token, err := other.GenerateToken(uuid.New(), types.RoleRegularUser)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID, types.RoleRegularUser)
	require.NoError(t, err)

	validator := service.AsTokenValidator()
	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}
