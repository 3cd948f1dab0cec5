// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/validation"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents a partial update. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	UserID      uuid.UUID
	Amount      *string
	Description *string
	Category    *string
	Date        *string
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	statsCache  adapter.StatisticsCache
	validator   *validation.Validator
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
// statsCache may be nil when caching is disabled.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, statsCache adapter.StatisticsCache) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		statsCache:  statsCache,
		validator:   validation.New(),
	}
}

// Execute applies the provided fields to the expense.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*entity.Expense, error) {
	exists, err := uc.expenseRepo.Exists(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, internalError(ctx, "Failed to check expense", err,
			"userID", input.UserID, "expenseID", input.ExpenseID)
	}
	if !exists {
		return nil, notFoundError()
	}

	changes, err := uc.changes(input)
	if err != nil {
		return nil, err
	}

	updated, err := uc.expenseRepo.Update(ctx, input.ExpenseID, input.UserID, changes)
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrExpenseNotFound):
			// Deleted between the existence check and the update.
			return nil, notFoundError()
		case errors.Is(err, domainerror.ErrNoFieldsToUpdate):
			return nil, noFieldsError()
		}
		return nil, internalError(ctx, "Failed to update expense", err,
			"userID", input.UserID, "expenseID", input.ExpenseID)
	}

	invalidateStatistics(ctx, uc.statsCache, input.UserID)

	return updated, nil
}

// changes validates every provided field and converts them to store changes.
func (uc *UpdateExpenseUseCase) changes(input UpdateExpenseInput) (entity.ExpenseChanges, error) {
	var changes entity.ExpenseChanges
	var fields []domainerror.FieldError

	check := func(field, value, rules string) bool {
		if fe := uc.validator.ValidateVar(field, value, rules, updateMessages); fe != nil {
			fields = append(fields, *fe)
			return false
		}
		return true
	}

	if input.Amount != nil {
		value := strings.TrimSpace(*input.Amount)
		if check("amount", value, amountRules) {
			amount, _ := validation.ParseAmount(value)
			changes.Amount = &amount
		}
	}
	if input.Description != nil {
		value := strings.TrimSpace(*input.Description)
		if check("description", value, descriptionRules) {
			changes.Description = &value
		}
	}
	if input.Category != nil {
		value := strings.TrimSpace(*input.Category)
		if check("category", value, categoryRules) {
			changes.Category = &value
		}
	}
	if input.Date != nil {
		value := strings.TrimSpace(*input.Date)
		if check("date", value, dateRules) {
			date, _ := validation.ParseDate(value)
			changes.Date = &date
		}
	}

	if len(fields) > 0 {
		return changes, domainerror.NewExpenseValidationError(domainerror.ErrCodeInvalidExpense, fields)
	}
	if changes.IsEmpty() {
		return changes, noFieldsError()
	}
	return changes, nil
}

func noFieldsError() *domainerror.ExpenseError {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeNoFieldsToUpdate,
		"No fields to update",
		domainerror.ErrNoFieldsToUpdate,
	)
}
