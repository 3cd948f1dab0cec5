package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Date is a calendar date stored as YYYY-MM-DD so that range predicates compare
// the same way on PostgreSQL DATE columns and SQLite text.
type Date time.Time

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	return Date(entity.TruncateToDate(t))
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return entity.TruncateToDate(time.Time(d))
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(entity.DateLayout)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) parse(s string) error {
	if len(s) < len(entity.DateLayout) {
		return fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse(entity.DateLayout, s[:len(entity.DateLayout)])
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = Date(t)
	return nil
}
