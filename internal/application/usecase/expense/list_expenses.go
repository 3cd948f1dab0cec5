// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ListExpensesInput represents the query of an expense listing.
// Empty strings mean the filter is not applied.
type ListExpensesInput struct {
	UserID    uuid.UUID
	StartDate string
	EndDate   string
	Category  string
}

// ListExpensesOutput represents the output of an expense listing.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
}

// ListExpensesUseCase handles listing a user's expenses.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute lists the user's expenses, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	start, end, err := dateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	filter := entity.ExpenseFilter{
		StartDate: start,
		EndDate:   end,
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		filter.Category = &category
	}

	expenses, err := uc.expenseRepo.FindAll(ctx, input.UserID, filter)
	if err != nil {
		return nil, internalError(ctx, "Failed to list expenses", err, "userID", input.UserID)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
	}, nil
}
