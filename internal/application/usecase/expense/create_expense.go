// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/validation"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateExpenseInput represents the input for expense creation. Every field is required.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Amount      string
	Description string
	Category    string
	Date        string
}

type newExpense struct {
	Amount      string `field:"amount" validate:"required,money"`
	Description string `field:"description" validate:"required,max=255"`
	Category    string `field:"category" validate:"required,max=50"`
	Date        string `field:"date" validate:"required,isodate"`
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	statsCache  adapter.StatisticsCache
	validator   *validation.Validator
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// statsCache may be nil when caching is disabled.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, statsCache adapter.StatisticsCache) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		statsCache:  statsCache,
		validator:   validation.New(),
	}
}

// Execute validates the input and stores a new expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*entity.Expense, error) {
	candidate := newExpense{
		Amount:      strings.TrimSpace(input.Amount),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Date:        strings.TrimSpace(input.Date),
	}

	if fields := uc.validator.Validate(candidate, expenseMessages); len(fields) > 0 {
		return nil, domainerror.NewExpenseValidationError(domainerror.ErrCodeInvalidExpense, fields)
	}

	// Both parse cleanly once validation passed.
	amount, _ := validation.ParseAmount(candidate.Amount)
	date, _ := validation.ParseDate(candidate.Date)

	expense := entity.NewExpense(input.UserID, amount, candidate.Description, candidate.Category, date)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, internalError(ctx, "Failed to create expense", err, "userID", input.UserID)
	}

	invalidateStatistics(ctx, uc.statsCache, input.UserID)

	return expense, nil
}
