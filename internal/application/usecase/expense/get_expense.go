// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetExpenseInput identifies a single expense of a user.
type GetExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// GetExpenseUseCase handles fetching a single expense.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute returns the expense, or a not-found error when it is missing or owned by someone else.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*entity.Expense, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, notFoundError()
		}
		return nil, internalError(ctx, "Failed to get expense", err,
			"userID", input.UserID, "expenseID", input.ExpenseID)
	}
	return expense, nil
}
