// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateToken issues a signed access token bound to userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates a token and returns its claims.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for anything else.
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}
