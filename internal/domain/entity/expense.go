// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date layout used for expense dates and filters.
const DateLayout = "2006-01-02"

// Column limits of the expenses table.
const (
	MaxDescriptionLength = 255
	MaxCategoryLength    = 50
)

// MaxAmount is the largest amount that fits a DECIMAL(10,2) column.
var MaxAmount = decimal.RequireFromString("99999999.99")

// Expense represents a single spending record owned by one user.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal // Always positive, two decimal places
	Description string
	Category    string
	Date        time.Time // Calendar date, time part is always midnight UTC
	CreatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(userID uuid.UUID, amount decimal.Decimal, description, category string, date time.Time) *Expense {
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount.Round(2),
		Description: description,
		Category:    category,
		Date:        TruncateToDate(date),
		CreatedAt:   time.Now().UTC(),
	}
}

// TruncateToDate drops the time-of-day part and normalizes to UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpenseFilter narrows an expense listing. Nil fields are not applied.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
}

// ExpenseChanges holds the fields of a partial update. Nil fields are left untouched.
type ExpenseChanges struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Date        *time.Time
}

// IsEmpty reports whether no field is set.
func (c ExpenseChanges) IsEmpty() bool {
	return c.Amount == nil && c.Description == nil && c.Category == nil && c.Date == nil
}

// StatisticsFilter bounds the expenses included in a statistics snapshot.
type StatisticsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthlyTotal is the summed amount of one calendar month ("YYYY-MM").
type MonthlyTotal struct {
	Month string
	Total decimal.Decimal
}

// MaxStatisticsMonths caps the monthly series of a snapshot.
const MaxStatisticsMonths = 12

// StatisticsSnapshot is the derived aggregate view over a user's expenses.
type StatisticsSnapshot struct {
	Total      decimal.Decimal
	ByCategory []CategoryTotal // Descending by total, ties by category ascending
	Monthly    []MonthlyTotal  // Most recent month first
}
