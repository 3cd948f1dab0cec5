// Package validation turns struct-tag validation failures into per-field domain errors.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Messages maps "field.tag" to the message reported for that failure.
// A "field" key acts as the fallback for every tag of that field.
type Messages map[string]string

// Validator validates input structs tagged with `validate` and named with `field`.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the money and isodate rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return fld.Name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := ParseAmount(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	return &Validator{validate: v}
}

// Validate checks s and returns one FieldError per failing field, in field order.
func (v *Validator) Validate(s any, messages Messages) []domainerror.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []domainerror.FieldError{{Field: "body", Message: "Invalid request"}}
	}

	fields := make([]domainerror.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, domainerror.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe, messages),
		})
	}
	return fields
}

// ValidateVar checks a single value against tag and reports it as field.
func (v *Validator) ValidateVar(field string, value any, tag string, messages Messages) *domainerror.FieldError {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &domainerror.FieldError{Field: field, Message: field + " is invalid"}
	}
	return &domainerror.FieldError{
		Field:   field,
		Message: message(field, validationErrors[0].Tag(), messages),
	}
}

func messageFor(fe validator.FieldError, messages Messages) string {
	return message(fe.Field(), fe.Tag(), messages)
}

func message(field, tag string, messages Messages) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	return field + " is invalid"
}

var (
	errInvalidAmount = errors.New("amount must be a positive number")
	errInvalidDate   = errors.New("date must be an ISO 8601 date")
)

// ParseAmount parses a decimal amount and rounds it to cents. The rounded value
// must be positive and fit the stored precision.
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}

	amount = amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThan(entity.MaxAmount) {
		return decimal.Zero, errInvalidAmount
	}
	return amount, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date as written.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(entity.DateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return entity.TruncateToDate(t), nil
	}
	return time.Time{}, errInvalidDate
}
