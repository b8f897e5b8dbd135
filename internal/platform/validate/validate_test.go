// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wh64dev/wh64-api/internal/platform/apperr"
	"github.com/wh64dev/wh64-api/internal/platform/validate"
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
		{"valid_string", "name", "wh64", false},
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
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Lengths checks MinLen/MaxLen with Unicode rune counting.
*/
func TestValidator_Lengths(t *testing.T) {
	t.Run("min_len", func(t *testing.T) {
		v := &validate.Validator{}
		v.MinLen("password", "short", 8)
		assert.True(t, v.HasErrors())
	})

	t.Run("max_len_runes", func(t *testing.T) {
		v := &validate.Validator{}
		// 4 runes, more than 4 bytes — rune counting must pass this.
		v.MaxLen("nickname", "도산안창호"[:12], 4)
		assert.False(t, v.HasErrors())
	})

	t.Run("max_len_exceeded", func(t *testing.T) {
		v := &validate.Validator{}
		v.MaxLen("message", string(make([]rune, 101)), 100)
		assert.True(t, v.HasErrors())
	})
}

/*
TestValidator_Digits checks the fixed-width numeric code rule.
*/
func TestValidator_Digits(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		isValid bool
	}{
		{"valid_code", "042917", true},
		{"leading_zeros", "000000", true},
		{"too_short", "1234", false},
		{"too_long", "1234567", false},
		{"non_numeric", "12a456", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Digits("code", tt.code, 6)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chaining verifies that multiple failures aggregate into one error.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("username", "").
		Email("email", "nope").
		MinLen("password", "123", 8)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, 400, ae.HTTPStatus)
}
