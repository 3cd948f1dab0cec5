// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or is not owned by the caller.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNoFieldsToUpdate is returned when an update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidDateRange is returned when a start date is after the end date.
	ErrInvalidDateRange = errors.New("start date is after end date")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpense    ExpenseErrorCode = "EXP-010001"
	ErrCodeNoFieldsToUpdate  ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidDateFilter ExpenseErrorCode = "EXP-010003"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"

	// Internal errors (09XXXX)
	ErrCodeExpenseInternal ExpenseErrorCode = "EXP-090001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Fields  []FieldError
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewExpenseValidationError creates an ExpenseError listing every invalid input field.
func NewExpenseValidationError(code ExpenseErrorCode, fields []FieldError) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: "Validation failed",
		Fields:  fields,
	}
}
