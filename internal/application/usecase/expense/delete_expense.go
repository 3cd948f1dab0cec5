// Package expense contains expense-related use cases.
package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteExpenseInput identifies the expense to delete.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// DeleteExpenseUseCase handles expense deletion.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	statsCache  adapter.StatisticsCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
// statsCache may be nil when caching is disabled.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository, statsCache adapter.StatisticsCache) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		statsCache:  statsCache,
	}
}

// Execute permanently removes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	removed, err := uc.expenseRepo.Delete(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		return internalError(ctx, "Failed to delete expense", err,
			"userID", input.UserID, "expenseID", input.ExpenseID)
	}
	if !removed {
		return notFoundError()
	}

	invalidateStatistics(ctx, uc.statsCache, input.UserID)

	return nil
}
