// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
)

/*
TestFromResponse_Classification verifies status -> kind mapping and body parsing.
*/
func TestFromResponse_Classification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    apperr.Kind
		message string
	}{
		{"validation", http.StatusUnprocessableEntity, `{"message":"Validation failed","errors":{"email":["Email is required"]}}`, apperr.KindValidation, "Validation failed"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthenticated."}`, apperr.KindAuth, "Unauthenticated."},
		{"server_html_body", http.StatusBadGateway, `<html>bad gateway</html>`, apperr.KindServer, apperr.MessageGeneric},
		{"server_empty_body", http.StatusInternalServerError, ``, apperr.KindServer, apperr.MessageGeneric},
		{"json_without_message", http.StatusNotFound, `{"success":false}`, apperr.KindServer, apperr.MessageGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperr.FromResponse(tt.status, []byte(tt.body))

			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

/*
TestFromResponse_FieldErrors checks the 422 field map is preserved.
*/
func TestFromResponse_FieldErrors(t *testing.T) {
	body := []byte(`{"message":"Validation failed","errors":{"email":["Email is required"]}}`)

	err := apperr.FromResponse(http.StatusUnprocessableEntity, body)

	require.Contains(t, err.Errors, "email")
	assert.Equal(t, "Email is required", err.Errors["email"][0])
	assert.True(t, apperr.IsValidation(err))
}

/*
TestAppError_UserMessage prefers the first field error over the top-level message.
*/
func TestAppError_UserMessage(t *testing.T) {
	err := apperr.Validation("Validation failed", map[string][]string{
		"phone": {"Phone is invalid"},
		"email": {},
		"name":  {"Name is required", "Name is too short"},
	})
	assert.Equal(t, "Name is required", err.UserMessage())

	plain := apperr.FromResponse(http.StatusForbidden, []byte(`{"message":"Forbidden"}`))
	assert.Equal(t, "Forbidden", plain.UserMessage())
	assert.Equal(t, "", plain.FirstFieldError())
}

/*
TestClientSideErrors verifies timeout, network and cancellation shapes.
*/
func TestClientSideErrors(t *testing.T) {
	timeout := apperr.Timeout(context.DeadlineExceeded)
	assert.Equal(t, http.StatusRequestTimeout, timeout.Status)
	assert.Equal(t, apperr.MessageTimeout, timeout.Message)
	assert.True(t, apperr.IsTimeout(timeout))
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)

	network := apperr.Network(errors.New("dial tcp: connection refused"))
	assert.Equal(t, 0, network.Status)
	assert.Equal(t, "dial tcp: connection refused", network.Message)

	assert.Equal(t, apperr.MessageNetwork, apperr.Network(nil).Message)

	canceled := apperr.Canceled(nil)
	assert.Equal(t, apperr.KindCanceled, canceled.Kind)
	assert.ErrorIs(t, canceled, context.Canceled)
}

/*
TestHelpers_WrappedChain ensures helpers see through fmt.Errorf wrapping.
*/
func TestHelpers_WrappedChain(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), apperr.Unauthorized("Unauthenticated."))

	assert.True(t, apperr.IsUnauthorized(wrapped))
	assert.Equal(t, "Unauthenticated.", apperr.UserMessage(wrapped))
	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.Equal(t, "plain", apperr.UserMessage(errors.New("plain")))
}
