// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional fields.

Write payloads use pointers for "not sent" booleans (is_active); these
helpers keep the nil checks out of the handlers.
*/
package pointer

// To returns a pointer to the provided value (pointer.To(true)).
func To[T any](v T) *T {
	return &v
}

// Fallback dereferences p, returning fallback if p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
