// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
// Fields are kept raw so a value of the wrong JSON type is reported against its
// field by validation instead of failing the whole body.
type CreateExpenseRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Description json.RawMessage `json:"description"`
	Category    json.RawMessage `json:"category"`
	Date        json.RawMessage `json:"date"`
}

// UpdateExpenseRequest represents the request body for a partial expense update.
// Absent fields are left unchanged; a present null is an invalid value.
type UpdateExpenseRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Description json.RawMessage `json:"description"`
	Category    json.RawMessage `json:"category"`
	Date        json.RawMessage `json:"date"`
}

// ScalarText returns a JSON string unquoted and any other value as its literal
// text, so numbers pass through and booleans or objects fail the field rules.
// Absent and null values yield "".
func ScalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// StringValue returns a JSON string unquoted. Any other type yields "".
func StringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Present reports whether the field appeared in the body, null included.
func Present(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) > 0
}

var null = []byte("null")

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CategoriesResponse lists the distinct categories of a user.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// StatisticsResponse represents an aggregate statistics snapshot.
type StatisticsResponse struct {
	Total      json.Number             `json:"total"`
	ByCategory []CategoryTotalResponse `json:"byCategory"`
	Monthly    []MonthlyTotalResponse  `json:"monthly"`
}

// CategoryTotalResponse is the spend of one category.
type CategoryTotalResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

// MonthlyTotalResponse is the spend of one calendar month (YYYY-MM).
type MonthlyTotalResponse struct {
	Month string      `json:"month"`
	Total json.Number `json:"total"`
}

// money renders d as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID.String(),
		UserID:      expense.UserID.String(),
		Amount:      money(expense.Amount),
		Description: expense.Description,
		Category:    expense.Category,
		Date:        expense.Date.Format(entity.DateLayout),
		CreatedAt:   expense.CreatedAt,
	}
}

// ToExpenseListResponse converts expenses to a response slice, never nil.
func ToExpenseListResponse(expenses []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ToExpenseResponse(e))
	}
	return out
}

// ToStatisticsResponse converts a statistics snapshot to its response form.
func ToStatisticsResponse(snapshot *entity.StatisticsSnapshot) StatisticsResponse {
	resp := StatisticsResponse{
		Total:      money(snapshot.Total),
		ByCategory: make([]CategoryTotalResponse, 0, len(snapshot.ByCategory)),
		Monthly:    make([]MonthlyTotalResponse, 0, len(snapshot.Monthly)),
	}
	for _, c := range snapshot.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTotalResponse{Category: c.Category, Total: money(c.Total)})
	}
	for _, m := range snapshot.Monthly {
		resp.Monthly = append(resp.Monthly, MonthlyTotalResponse{Month: m.Month, Total: money(m.Total)})
	}
	return resp
}
