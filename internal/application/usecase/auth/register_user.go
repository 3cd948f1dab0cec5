// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/validation"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	Token string
	User  *entity.User
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type registration struct {
	Username string `field:"username" validate:"min=3,max=50"`
	Email    string `field:"email" validate:"required,email,max=100"`
	Password string `field:"password" validate:"min=6,max=72"`
}

var registrationMessages = validation.Messages{
	"username.min": "Username must be at least 3 characters",
	"username.max": "Username must be at most 50 characters",
	"email":        "Please provide a valid email",
	"password.min": "Password must be at least 6 characters",
	"password.max": "Password must be at most 72 bytes",
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	validator       *validation.Validator
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		validator:       validation.New(),
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	candidate := registration{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	}

	fields := uc.validator.Validate(candidate, registrationMessages)
	if len(candidate.Password) > maxPasswordBytes && !hasField(fields, "password") {
		fields = append(fields, domainerror.FieldError{Field: "password", Message: registrationMessages["password.max"]})
	}
	if len(fields) > 0 {
		return nil, domainerror.NewAuthValidationError(domainerror.ErrCodeInvalidRegistration, fields)
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, candidate.Username, candidate.Email)
	if err != nil {
		return nil, internalError(ctx, "Failed to check existing users", err)
	}
	if exists {
		return nil, conflictError()
	}

	passwordHash, err := uc.passwordService.HashPassword(candidate.Password)
	if err != nil {
		return nil, internalError(ctx, "Failed to hash password", err)
	}

	user := entity.NewUser(candidate.Username, candidate.Email, passwordHash)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Another registration may have claimed the name between the check and the insert.
		if errors.Is(err, domainerror.ErrUsernameOrEmailTaken) {
			return nil, conflictError()
		}
		return nil, internalError(ctx, "Failed to create user", err)
	}

	token, err := uc.tokenService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, internalError(ctx, "Failed to generate token", err)
	}

	slog.InfoContext(ctx, "User registered", "userID", user.ID)

	return &RegisterUserOutput{
		Token: token,
		User:  user,
	}, nil
}

func hasField(fields []domainerror.FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func conflictError() *domainerror.AuthError {
	return domainerror.NewAuthError(
		domainerror.ErrCodeUsernameOrEmailTaken,
		"Username or email already exists",
		domainerror.ErrUsernameOrEmailTaken,
	)
}

// internalError logs err and hides it behind a generic message.
func internalError(ctx context.Context, msg string, err error) *domainerror.AuthError {
	slog.ErrorContext(ctx, msg, "error", err)
	return domainerror.NewAuthError(domainerror.ErrCodeAuthInternal, "Internal server error", err)
}
