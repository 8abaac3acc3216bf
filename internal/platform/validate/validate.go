// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// The client runs it before sending credentials so obviously bad input never
// costs a round-trip; the stub API runs the same rules on the way in. Both
// produce the 422 `{message, errors}` shape the screens already know how to show.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
)

// MessageFailed is the top-level message of every validation error.
const MessageFailed = "Validation failed"

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.Validation("Invalid JSON payload", nil)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs   map[string][]string
	fields []string
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, label, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, label+" is required")
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
// Empty values are left to [Validator.Required].
func (v *Validator) MinLen(field, label, value string, min int) *Validator {
	if value != "" && utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("%s must be at least %d characters", label, min))
	}
	return v
}

// Email fails if a non-empty value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Match fails if value differs from other (password confirmation).
func (v *Validator) Match(field, label, value, other string) *Validator {
	if value != other {
		v.add(field, label+" does not match")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a 422 [apperr.AppError] if any rules failed, or nil if all passed.
//
// Err is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Validation(MessageFailed, v.errs)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Fields returns the failed field names in the order they first failed.
func (v *Validator) Fields() []string {
	return v.fields
}

func (v *Validator) add(field, message string) {
	if v.errs == nil {
		v.errs = make(map[string][]string)
	}
	if _, seen := v.errs[field]; !seen {
		v.fields = append(v.fields, field)
	}
	v.errs[field] = append(v.errs[field], message)
}
