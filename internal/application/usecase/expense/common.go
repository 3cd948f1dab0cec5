// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/validation"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

var expenseMessages = validation.Messages{
	"amount":               "Amount must be a positive number",
	"description.required": "Description is required",
	"description.max":      "Description must be at most 255 characters",
	"category.required":    "Category is required",
	"category.max":         "Category must be at most 50 characters",
	"date":                 "Valid date is required",
}

var updateMessages = validation.Messages{
	"amount":               "Amount must be a positive number",
	"description.required": "Description cannot be empty",
	"description.max":      "Description must be at most 255 characters",
	"category.required":    "Category cannot be empty",
	"category.max":         "Category must be at most 50 characters",
	"date":                 "Valid date is required",
}

const (
	amountRules      = "required,money"
	descriptionRules = "required,max=255"
	categoryRules    = "required,max=50"
	dateRules        = "required,isodate"
)

func notFoundError() *domainerror.ExpenseError {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		"Expense not found",
		domainerror.ErrExpenseNotFound,
	)
}

// internalError logs err with its context and hides it behind a generic message.
func internalError(ctx context.Context, msg string, err error, attrs ...any) *domainerror.ExpenseError {
	slog.ErrorContext(ctx, msg, append(attrs, "error", err)...)
	return domainerror.NewExpenseError(domainerror.ErrCodeExpenseInternal, "Internal server error", err)
}

// invalidateStatistics retires cached statistics after a write. A failure only
// delays freshness until the cache entry expires, so it is logged, not returned.
func invalidateStatistics(ctx context.Context, cache adapter.StatisticsCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate statistics cache", "userID", userID, "error", err)
	}
}

// dateRange parses optional startDate/endDate query values.
func dateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var fields []domainerror.FieldError

	start, startErr := optionalDate(startDate)
	if startErr != nil {
		fields = append(fields, domainerror.FieldError{Field: "startDate", Message: "startDate must be a valid date (YYYY-MM-DD)"})
	}
	end, endErr := optionalDate(endDate)
	if endErr != nil {
		fields = append(fields, domainerror.FieldError{Field: "endDate", Message: "endDate must be a valid date (YYYY-MM-DD)"})
	}
	if len(fields) > 0 {
		return nil, nil, domainerror.NewExpenseValidationError(domainerror.ErrCodeInvalidDateFilter, fields)
	}

	if start != nil && end != nil && start.After(*end) {
		return nil, nil, &domainerror.ExpenseError{
			Code:    domainerror.ErrCodeInvalidDateFilter,
			Message: "Validation failed",
			Fields:  []domainerror.FieldError{{Field: "startDate", Message: "startDate must not be after endDate"}},
			Err:     domainerror.ErrInvalidDateRange,
		}
	}

	return start, end, nil
}

func optionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := validation.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
