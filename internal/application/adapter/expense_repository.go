// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
// Every method is scoped to the owning user; rows of other users are never visible.
type ExpenseRepository interface {
	// FindAll retrieves the user's expenses ordered by date then creation time, newest first.
	FindAll(ctx context.Context, userID uuid.UUID, filter entity.ExpenseFilter) ([]*entity.Expense, error)

	// FindByID retrieves a single expense. Returns ErrExpenseNotFound if missing or not owned.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Expense, error)

	// Exists checks if the expense exists and is owned by userID.
	Exists(ctx context.Context, id, userID uuid.UUID) (bool, error)

	// Create persists a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// Update applies the non-nil changes and returns the stored result.
	// Returns ErrNoFieldsToUpdate for empty changes and ErrExpenseNotFound if no row matched.
	Update(ctx context.Context, id, userID uuid.UUID, changes entity.ExpenseChanges) (*entity.Expense, error)

	// Delete removes the expense and reports whether a row was removed.
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)

	// GetStatistics aggregates the user's expenses within the filter bounds.
	GetStatistics(ctx context.Context, userID uuid.UUID, filter entity.StatisticsFilter) (*entity.StatisticsSnapshot, error)

	// ListCategories returns the distinct category labels used by the user, sorted.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]string, error)
}
