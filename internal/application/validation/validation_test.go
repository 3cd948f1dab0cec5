package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "12.5", expected: "12.50"},
		{input: " 0.01 ", expected: "0.01"},
		{input: "0.005", expected: "0.01"},
		{input: "99999999.99", expected: "99999999.99"},
		{input: "0.004", wantErr: true},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "100000000", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount.StringFixed(2))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "2024-02-29", expected: "2024-02-29"},
		{input: "2024-03-01T23:30:00-05:00", expected: "2024-03-01"},
		{input: "2024-03-01T00:30:00Z", expected: "2024-03-01"},
		{input: "2023-02-29", wantErr: true},
		{input: "01/03/2024", wantErr: true},
		{input: "yesterday", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, date.Format("2006-01-02"))
		})
	}
}

type sample struct {
	Name   string `field:"name" validate:"required,min=3"`
	Email  string `field:"email" validate:"required,email"`
	Amount string `field:"amount" validate:"money"`
	Date   string `field:"date" validate:"isodate"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()
	messages := Messages{
		"name.min": "Name must be at least 3 characters",
		"email":    "Please provide a valid email",
	}

	t.Run("valid input", func(t *testing.T) {
		fields := v.Validate(sample{Name: "alice", Email: "a@example.com", Amount: "1", Date: "2024-01-01"}, messages)
		assert.Empty(t, fields)
	})

	t.Run("every failing field in order", func(t *testing.T) {
		fields := v.Validate(sample{Name: "al", Email: "nope", Amount: "0", Date: "never"}, messages)
		assert.Equal(t, []domainerror.FieldError{
			{Field: "name", Message: "Name must be at least 3 characters"},
			{Field: "email", Message: "Please provide a valid email"},
			{Field: "amount", Message: "amount is invalid"},
			{Field: "date", Message: "date is invalid"},
		}, fields)
	})
}

func TestValidator_ValidateVar(t *testing.T) {
	v := New()
	messages := Messages{"description.required": "Description cannot be empty"}

	assert.Nil(t, v.ValidateVar("description", "Lunch", "required,max=255", messages))

	fe := v.ValidateVar("description", "", "required,max=255", messages)
	require.NotNil(t, fe)
	assert.Equal(t, "description", fe.Field)
	assert.Equal(t, "Description cannot be empty", fe.Message)

	fe = v.ValidateVar("amount", "-1", "money", messages)
	require.NotNil(t, fe)
	assert.Equal(t, "amount is invalid", fe.Message)
}
