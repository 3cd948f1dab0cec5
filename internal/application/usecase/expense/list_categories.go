// Package expense contains expense-related use cases.
package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// ListCategoriesUseCase lists the category labels a user has used.
type ListCategoriesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(expenseRepo adapter.ExpenseRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute returns the distinct categories, sorted.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]string, error) {
	categories, err := uc.expenseRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, internalError(ctx, "Failed to list categories", err, "userID", userID)
	}
	return categories, nil
}
