package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestGetCurrentUserUseCase(t *testing.T) {
	alice := entity.NewUser("alice", "alice@example.com", "hashed:secret1")
	uc := NewGetCurrentUserUseCase(newFakeUserRepository(alice))

	user, err := uc.Execute(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = uc.Execute(context.Background(), uuid.New())
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerror.ErrCodeUserNotFound, authErr.Code)
}
