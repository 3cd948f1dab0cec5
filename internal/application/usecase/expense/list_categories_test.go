package expense

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestListCategoriesUseCase(t *testing.T) {
	userID := uuid.New()
	travel := seedExpense(userID)
	travel.Category = "Travel"
	repo := newFakeExpenseRepository(seedExpense(userID), travel, seedExpense(uuid.New()))
	uc := NewListCategoriesUseCase(repo)

	categories, err := uc.Execute(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Travel"}, categories)

	repo.err = errors.New("boom")
	_, err = uc.Execute(context.Background(), userID)

	var expErr *domainerror.ExpenseError
	require.True(t, errors.As(err, &expErr))
	assert.Equal(t, domainerror.ErrCodeExpenseInternal, expErr.Code)
}
