// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// VerifyTokenUseCase resolves a bearer token to the user it was issued for.
type VerifyTokenUseCase struct {
	tokenService adapter.TokenService
}

// NewVerifyTokenUseCase creates a new VerifyTokenUseCase instance.
func NewVerifyTokenUseCase(tokenService adapter.TokenService) *VerifyTokenUseCase {
	return &VerifyTokenUseCase{
		tokenService: tokenService,
	}
}

// Execute validates token and returns the bound user ID.
func (uc *VerifyTokenUseCase) Execute(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingToken,
			"Access token required",
			domainerror.ErrInvalidToken,
		)
	}

	claims, err := uc.tokenService.ValidateToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpiredToken) {
			return uuid.Nil, domainerror.NewAuthError(
				domainerror.ErrCodeExpiredToken,
				"Token has expired",
				err,
			)
		}
		return uuid.Nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"Invalid token",
			err,
		)
	}

	return claims.UserID, nil
}
