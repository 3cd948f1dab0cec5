package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service := NewTokenService("secret", time.Hour, WithClock(func() time.Time { return issuedAt }))
	userID := uuid.New()

	token, err := service.GenerateToken(ctx, userID)
	require.NoError(t, err)

	claims, err := service.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt.UTC())
}

func TestTokenService_DefaultDuration(t *testing.T) {
	service := NewTokenService("secret", 0).(*tokenService)
	assert.Equal(t, 24*time.Hour, service.duration)
}

func TestTokenService_Rejections(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	service := NewTokenService("secret", time.Hour, WithClock(clock))

	valid, err := service.GenerateToken(ctx, userID)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewTokenService("secret", time.Hour, WithClock(func() time.Time { return now.Add(2 * time.Hour) }))
		_, err := later.ValidateToken(ctx, valid)
		assert.ErrorIs(t, err, domainerror.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, WithClock(clock))
		_, err := other.ValidateToken(ctx, valid)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := service.ValidateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		_, err := service.ValidateToken(ctx, valid+"x")
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwt.RegisteredClaims{Subject: userID.String()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})
}
