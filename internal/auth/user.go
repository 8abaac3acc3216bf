// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the client side of the authentication lifecycle.

# Architecture

  - Session: named operations (login, logout, profile, recovery) over the
    API client, and sole writer of the token store.
  - Gate: the per-screen guard that validates a stored token before any
    protected content is shown.
  - Navigator: the redirect-to-login side effect, injected by the front-end.
*/
package auth

import "time"

// # Domain Entities

// User is the authenticated account as returned by /profile and /login.
type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `json:"role,omitempty"`
	VendorID        int64      `json:"vendor_id,omitempty"`
	BusinessName    string     `json:"business_name,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	User *User `json:"user"`
}

// # Request Payloads

// RegisterVendorInput enrols a new salon owner.
type RegisterVendorInput struct {
	Name                 string `json:"name"`
	BusinessName         string `json:"business_name"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPasswordInput completes the forgot-password flow.
type ResetPasswordInput struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// # Endpoints

const (
	EndpointLogin              = "/login"
	EndpointLogout             = "/logout"
	EndpointProfile            = "/profile"
	EndpointRegisterVendor     = "/register-vendor"
	EndpointVerifyEmail        = "/verify-email"
	EndpointResendVerification = "/verify-email/resend"
	EndpointForgotPassword     = "/forgot-password"
	EndpointResetPassword      = "/reset-password"
)

// # Field Identifiers

const (
	FieldName                 = "name"
	FieldBusinessName         = "business_name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldToken                = "token"
	FieldCode                 = "code"
)

// MinPasswordLength mirrors the server-side password rule.
const MinPasswordLength = 8
