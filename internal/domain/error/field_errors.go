// Package error defines domain-specific errors for the Expense Tracker application.
package error

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string
	Message string
}
