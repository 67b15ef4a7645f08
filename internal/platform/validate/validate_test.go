// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "The Forest Hiker", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Length exercises the MinLen and MaxLen rules, including
multi-byte rune counting.
*/
func TestValidator_Length(t *testing.T) {
	t.Run("min_len", func(t *testing.T) {
		v := &validate.Validator{}
		v.MinLen("name", "short", 10)
		assert.True(t, v.HasErrors())

		v = &validate.Validator{}
		v.MinLen("name", "long enough value", 10)
		assert.False(t, v.HasErrors())
	})

	t.Run("max_len", func(t *testing.T) {
		v := &validate.Validator{}
		v.MaxLen("summary", "way too long for the limit", 5)
		assert.True(t, v.HasErrors())
	})

	t.Run("counts_runes_not_bytes", func(t *testing.T) {
		v := &validate.Validator{}
		v.MaxLen("name", "日本語の旅", 5)
		assert.False(t, v.HasErrors(), "5 runes must pass a max of 5")
	})
}

/*
TestValidator_Range covers the inclusive integer range rule.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		hasError bool
	}{
		{"below_min", 0, true},
		{"at_min", 1, false},
		{"inside", 3, false},
		{"at_max", 5, false},
		{"above_max", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("rating", tt.value, 1, 5)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Positive verifies zero and negative values are rejected.
*/
func TestValidator_Positive(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		hasError bool
	}{
		{"positive", 497.0, false},
		{"zero", 0, true},
		{"negative", -1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Positive("price", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf verifies the allow-list rule and its message.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("difficulty", "medium", "easy", "medium", "difficult")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("difficulty", "extreme", "easy", "medium", "difficult")
	require.True(t, v.HasErrors())

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "Must be one of: easy, medium, difficult", ae.Details[0].Message)
}

/*
TestValidator_UUID checks UUID format validation, case-insensitively.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"lowercase_v4", "4f2f9a6e-9a17-4d4e-8c02-6a1f0b9c2d3e", true},
		{"uppercase", "4F2F9A6E-9A17-4D4E-8C02-6A1F0B9C2D3E", true},
		{"missing_dashes", "4f2f9a6e9a174d4e8c026a1f0b9c2d3e", false},
		{"not_a_uuid", "tour-123", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("id", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Equals verifies the pairwise comparison carries the custom
message through to the field error.
*/
func TestValidator_Equals(t *testing.T) {
	v := &validate.Validator{}
	v.Equals("passwordConfirm", "pass1234", "pass1234", "Passwords are not the same!")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.Equals("passwordConfirm", "pass1234", "different", "Passwords are not the same!")
	require.True(t, v.HasErrors())

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "Passwords are not the same!", ae.Details[0].Message)
}

/*
TestValidator_Chaining ensures a chain accumulates every failure and Err
reports them all at once.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("name", "").
		Email("email", "nope").
		Range("rating", 9, 1, 5).
		Err()

	require.NotNil(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, 400, ae.HTTPStatus)
}

/*
TestRequiredError checks the single-field shortcut constructor.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("email", "Please provide email and password!")

	require.NotNil(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "email", err.Details[0].Field)
	assert.Equal(t, "Please provide email and password!", err.Details[0].Message)
}
