// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Hana", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("name", "Name", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusUnprocessableEntity, ae.Status)
			assert.Equal(t, []string{"Name is required"}, ae.Errors["name"])
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
		{"valid_email", "owner@salonbook.dev", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty_is_left_to_required", "", true},
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
TestValidator_Chain_Failure tests error accumulation and field ordering.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("email", "Email", "").
		Required("password", "Password", "abc").
		MinLen("password", "Password", "abc", 8).
		Match("password_confirmation", "Password confirmation", "abc", "abd").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, validate.MessageFailed, ae.Message)
	assert.Len(t, ae.Errors, 3)
	assert.Equal(t, []string{"email", "password", "password_confirmation"}, v.Fields())
	assert.Equal(t, "Email is required", ae.UserMessage())
}
