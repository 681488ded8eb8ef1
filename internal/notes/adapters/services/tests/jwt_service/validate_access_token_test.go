package jwtservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterservices "noteshelf/internal/notes/adapters/services"
	"noteshelf/internal/notes/ports/services"
)

const testSecretKey = "test-secret-key"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims adapterservices.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	service := adapterservices.NewJWT(testSecretKey)

	validClaims := func(userID int64) adapterservices.Claims {
		return adapterservices.Claims{
			UserID: userID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
	}

	t.Run("Успешная валидация токена", func(t *testing.T) {
		token := signToken(t, testSecretKey, jwt.SigningMethodHS256, validClaims(7))

		userID, err := service.ValidateAccessToken(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, int64(7), userID)
	})

	t.Run("Ошибка - истекший токен", func(t *testing.T) {
		expired := validClaims(7)
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token := signToken(t, testSecretKey, jwt.SigningMethodHS256, expired)

		userID, err := service.ValidateAccessToken(ctx, token)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrExpiredJWTToken)
		assert.Zero(t, userID)
	})

	t.Run("Ошибка - неверная подпись", func(t *testing.T) {
		token := signToken(t, "another-secret", jwt.SigningMethodHS256, validClaims(7))

		userID, err := service.ValidateAccessToken(ctx, token)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
		assert.Zero(t, userID)
	})

	t.Run("Ошибка - пустой user_id в claims", func(t *testing.T) {
		token := signToken(t, testSecretKey, jwt.SigningMethodHS256, validClaims(0))

		userID, err := service.ValidateAccessToken(ctx, token)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
		assert.Zero(t, userID)
	})

	t.Run("Ошибка - неподдерживаемый алгоритм подписи", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(7)).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		userID, err := service.ValidateAccessToken(ctx, token)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
		assert.Zero(t, userID)
	})

	t.Run("Ошибка - мусор вместо токена", func(t *testing.T) {
		userID, err := service.ValidateAccessToken(ctx, "not-a-jwt-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
		assert.Zero(t, userID)
	})
}
