// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Code   string               `json:"code,omitempty"`
	Errors []FieldErrorResponse `json:"errors,omitempty"`
}

// FieldErrorResponse describes one invalid input field.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToFieldErrorResponses converts domain field errors to their response form.
func ToFieldErrorResponses(fields []domainerror.FieldError) []FieldErrorResponse {
	if len(fields) == 0 {
		return nil
	}
	out := make([]FieldErrorResponse, len(fields))
	for i, f := range fields {
		out[i] = FieldErrorResponse{Field: f.Field, Message: f.Message}
	}
	return out
}
