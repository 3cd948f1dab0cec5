// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
// Identifier is either the username or the email address.
type LoginUserInput struct {
	Identifier string
	Password   string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	Token string
	User  *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService

	decoyOnce sync.Once
	decoyHash string
}

// decoyPassword is hashed once so unknown identifiers cost one bcrypt
// comparison, the same as a wrong password.
const decoyPassword = "expense-tracker-decoy-password"

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	identifier := strings.TrimSpace(input.Identifier)

	var fields []domainerror.FieldError
	if identifier == "" {
		fields = append(fields, domainerror.FieldError{Field: "username", Message: "Username is required"})
	}
	if input.Password == "" {
		fields = append(fields, domainerror.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(fields) > 0 {
		return nil, domainerror.NewAuthValidationError(domainerror.ErrCodeMissingCredentials, fields)
	}

	user, err := uc.userRepo.FindByLoginIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			_ = uc.passwordService.VerifyPassword(uc.decoy(), input.Password)
			return nil, invalidCredentials()
		}
		return nil, internalError(ctx, "Failed to look up user", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	token, err := uc.tokenService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, internalError(ctx, "Failed to generate token", err)
	}

	return &LoginUserOutput{
		Token: token,
		User:  user,
	}, nil
}

// decoy returns a hash made by the configured password service, so the
// comparison runs at the same cost as for a real account.
func (uc *LoginUserUseCase) decoy() string {
	uc.decoyOnce.Do(func() {
		hash, err := uc.passwordService.HashPassword(decoyPassword)
		if err != nil {
			slog.Warn("Failed to hash decoy password", "error", err)
			return
		}
		uc.decoyHash = hash
	})
	return uc.decoyHash
}

// invalidCredentials is shared by unknown users and wrong passwords so the
// response does not reveal which accounts exist.
func invalidCredentials() *domainerror.AuthError {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"Invalid credentials",
		domainerror.ErrInvalidCredentials,
	)
}
