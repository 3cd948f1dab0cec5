package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := persistence.NewUserRepository(gdb)

	alice := entity.NewUser("alice", "alice@example.com", "$2a$12$hash")
	require.NoError(t, repo.Create(ctx, alice))

	t.Run("FindByID returns the stored user", func(t *testing.T) {
		found, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.Equal(t, "$2a$12$hash", found.PasswordHash)
	})

	t.Run("FindByID unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})

	t.Run("FindByLoginIdentifier matches username or email", func(t *testing.T) {
		byName, err := repo.FindByLoginIdentifier(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byName.ID)

		byEmail, err := repo.FindByLoginIdentifier(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)

		_, err = repo.FindByLoginIdentifier(ctx, "bob")
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})

	t.Run("ExistsByUsernameOrEmail", func(t *testing.T) {
		exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "other@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "alice@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsernameOrEmail(ctx, "bob", "bob@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Create maps unique violations", func(t *testing.T) {
		err := repo.Create(ctx, entity.NewUser("alice", "new@example.com", "hash"))
		assert.ErrorIs(t, err, domainerror.ErrUsernameOrEmailTaken)

		err = repo.Create(ctx, entity.NewUser("newname", "alice@example.com", "hash"))
		assert.ErrorIs(t, err, domainerror.ErrUsernameOrEmailTaken)
	})
}
