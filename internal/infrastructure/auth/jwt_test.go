package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "hoa-backend-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "maria@example.com",
		Role:   "homeowner",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, "homeowner", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.False(t, claims.IsAdmin())

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	assert.Empty(t, refreshClaims.Role, "refresh token carries minimal claims")
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a refresh token presented as access", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Role: "admin"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-value",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "other",
			MaxRefreshCount:        1,
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-test-access-secret",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "hoa-backend-test",
			MaxRefreshCount:        1,
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "maria@example.com",
		Role:   "homeowner",
	})
	require.NoError(t, err)

	t.Run("issues a fresh pair with updated claims", func(t *testing.T) {
		refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, "maria@example.com", "admin")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "admin", claims.Role)

		refreshClaims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("enforces the refresh count limit", func(t *testing.T) {
		current := pair.RefreshToken
		for i := 0; i < 3; i++ {
			refreshed, err := svc.RefreshTokenPair(current, "maria@example.com", "homeowner")
			require.NoError(t, err)
			current = refreshed.RefreshToken
		}

		_, err := svc.RefreshTokenPair(current, "maria@example.com", "homeowner")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("rejects an access token used as refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "maria@example.com", "homeowner")
		assert.Error(t, err)
	})
}
