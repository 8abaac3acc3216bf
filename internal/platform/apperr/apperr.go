// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for salonbook.

Every failure produced by a call to the salon API is classified into one
[AppError] before it leaves the API client. Callers never inspect transport
errors or raw response bodies themselves.

Taxonomy:

  - Network (status 0): transport or decode failure.
  - Timeout (status 408): the per-request deadline elapsed.
  - Validation (status 422): carries a field -> messages map.
  - Auth (status 401): the bearer token is missing, expired or revoked.
  - Server: any other non-2xx status, message only.
  - Canceled (status 0): the caller abandoned the request.

The same type is rendered by the stub API, so both sides agree on the
`{message, errors}` wire shape.
*/
package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Kind classifies an [AppError].
type Kind string

const (
	KindNetwork    Kind = "network"
	KindTimeout    Kind = "timeout"
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindServer     Kind = "server"
	KindCanceled   Kind = "canceled"
)

// # Messages

const (
	MessageTimeout  = "Request timeout. Please check your connection."
	MessageNetwork  = "Network error"
	MessageGeneric  = "An error occurred"
	MessageCanceled = "Request canceled"
)

// AppError is the canonical error type of the client.
//
// # Security
//
// The Cause field is for local logging only and is never rendered by the stub
// API to avoid leaking implementation details.
type AppError struct {
	// Message is a human-readable description suitable for a toast.
	Message string `json:"message"`
	// Errors holds per-field validation messages for 422 responses.
	Errors map[string][]string `json:"errors,omitempty"`
	// Status is the HTTP status, 408 for timeouts and 0 for transport failures.
	Status int `json:"-"`
	// Kind is the taxonomy bucket derived from Status.
	Kind Kind `json:"-"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// FirstFieldError returns the first message of the alphabetically first field
// that has one. It returns "" when the map is empty.
func (e *AppError) FirstFieldError() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if messages := e.Errors[field]; len(messages) > 0 {
			return messages[0]
		}
	}
	return ""
}

// UserMessage is what a screen shows: the first field error if any, else Message.
func (e *AppError) UserMessage() string {
	if msg := e.FirstFieldError(); msg != "" {
		return msg
	}
	return e.Message
}

// # Client-Side Classification

// Timeout creates the 408 error returned when the per-request deadline elapses.
func Timeout(cause error) *AppError {
	return &AppError{
		Message: MessageTimeout,
		Status:  http.StatusRequestTimeout,
		Kind:    KindTimeout,
		Cause:   cause,
	}
}

// Network creates a status-0 error for transport and decode failures.
func Network(cause error) *AppError {
	message := MessageNetwork
	if cause != nil && cause.Error() != "" {
		message = cause.Error()
	}
	return &AppError{
		Message: message,
		Kind:    KindNetwork,
		Cause:   cause,
	}
}

// Canceled creates a status-0 error for requests abandoned by their caller.
func Canceled(cause error) *AppError {
	if cause == nil {
		cause = context.Canceled
	}
	return &AppError{
		Message: MessageCanceled,
		Kind:    KindCanceled,
		Cause:   cause,
	}
}

// errorBody is the subset of the envelope read from failed responses.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// FromResponse classifies a non-2xx response. The body is used when it parses
// as JSON; otherwise a generic message is returned with the same status.
func FromResponse(status int, body []byte) *AppError {
	appError := &AppError{
		Message: MessageGeneric,
		Status:  status,
		Kind:    kindForStatus(status),
	}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if parsed.Message != "" {
			appError.Message = parsed.Message
		}
		if len(parsed.Errors) > 0 {
			appError.Errors = parsed.Errors
		}
	}

	return appError
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusRequestTimeout:
		return KindTimeout
	default:
		return KindServer
	}
}

// # Server-Side Constructors (stub API)

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{Message: msg, Status: http.StatusUnauthorized, Kind: KindAuth}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Customer") // Returns "Customer not found"
func NotFound(resource string) *AppError {
	return &AppError{Message: resource + " not found", Status: http.StatusNotFound, Kind: KindServer}
}

// Validation creates a 422 [AppError] carrying per-field messages.
func Validation(msg string, fields map[string][]string) *AppError {
	return &AppError{Message: msg, Errors: fields, Status: http.StatusUnprocessableEntity, Kind: KindValidation}
}

// Internal creates a 500 [AppError] wrapping an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Message: "An unexpected error occurred",
		Status:  http.StatusInternalServerError,
		Kind:    KindServer,
		Cause:   cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsUnauthorized reports whether err is a 401.
func IsUnauthorized(err error) bool {
	ae := As(err)
	return ae != nil && ae.Kind == KindAuth
}

// IsValidation reports whether err carries field validation messages.
func IsValidation(err error) bool {
	ae := As(err)
	return ae != nil && ae.Kind == KindValidation
}

// IsTimeout reports whether err is a per-request timeout.
func IsTimeout(err error) bool {
	ae := As(err)
	return ae != nil && ae.Kind == KindTimeout
}

// UserMessage renders any error the way a screen toast does.
func UserMessage(err error) string {
	if ae := As(err); ae != nil {
		return ae.UserMessage()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
