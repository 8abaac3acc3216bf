// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

// Envelope is the uniform reply shape of the salon API.
//
// AccessToken is only ever present on the login response.
type Envelope[T any] struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Data        T      `json:"data"`
	AccessToken string `json:"access_token,omitempty"`
}

// Empty is the Data type of endpoints whose payload callers ignore. It
// accepts any JSON value: Laravel sends [] for an empty payload.
type Empty struct{}

// UnmarshalJSON discards the payload.
func (*Empty) UnmarshalJSON([]byte) error { return nil }
