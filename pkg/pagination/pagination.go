// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for list endpoints.
//
// # Overview
//
// The salon API answers list endpoints with either a bare JSON array or a
// paginated object:
//
//	{"data": [...], "current_page": 1, "last_page": 3, "per_page": 20, "total": 57}
//
// [Page] accepts both and normalizes them at the decoding boundary, so callers
// only ever see one shape.
package pagination

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/salonbook/pkg/convert"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 20
	// MaxPerPage is the upper bound for items per page.
	MaxPerPage = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// # Request Parameters

// Params holds the page request of a list call.
type Params struct {
	Page    int
	PerPage int
	Search  string
}

// Normalize clamps invalid values to the defaults.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		p.PerPage = DefaultPerPage
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Query encodes the normalized params as query values.
func (p Params) Query() url.Values {
	p = p.Normalize()

	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	return values
}

// FromQuery parses "page", "per_page" and "search" with clamping. The stub
// API uses it on the server side of the same contract.
func FromQuery(values url.Values) Params {
	return Params{
		Page:    convert.ToIntD(values.Get("page"), DefaultPage),
		PerPage: convert.ToIntD(values.Get("per_page"), DefaultPerPage),
		Search:  values.Get("search"),
	}.Normalize()
}

// Offset returns the index of the first item of the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// # Response Shape

// Page is the normalized result of a list endpoint.
type Page[T any] struct {
	Items       []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// NewPage builds the paginated object for one slice of a larger list.
func NewPage[T any](items []T, params Params, total int) Page[T] {
	params = params.Normalize()

	lastPage := 1
	if total > 0 {
		lastPage = (total + params.PerPage - 1) / params.PerPage
	}
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:       items,
		CurrentPage: params.Page,
		LastPage:    lastPage,
		PerPage:     params.PerPage,
		Total:       total,
	}
}

// HasMore reports whether a later page exists.
func (p Page[T]) HasMore() bool {
	return p.CurrentPage < p.LastPage
}

// UnmarshalJSON accepts a bare array or a paginated object. A bare array is
// a single complete page.
func (p *Page[T]) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*p = Page[T]{Items: []T{}, CurrentPage: 1, LastPage: 1}
		return nil

	case trimmed[0] == '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("pagination: decode list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		*p = Page[T]{
			Items:       items,
			CurrentPage: 1,
			LastPage:    1,
			PerPage:     len(items),
			Total:       len(items),
		}
		return nil

	case trimmed[0] == '{':
		var decoded pageWire[T]
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return fmt.Errorf("pagination: decode page: %w", err)
		}
		*p = Page[T](decoded)
		if p.Items == nil {
			p.Items = []T{}
		}
		if p.CurrentPage == 0 {
			p.CurrentPage = 1
		}
		if p.LastPage < p.CurrentPage {
			p.LastPage = p.CurrentPage
		}
		return nil

	default:
		return fmt.Errorf("pagination: unexpected list shape starting with %q", trimmed[0])
	}
}

// pageWire has Page's fields without its UnmarshalJSON method.
type pageWire[T any] struct {
	Items       []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}
