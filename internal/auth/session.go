// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/salonbook/internal/apiclient"
	"github.com/taibuivan/salonbook/internal/platform/validate"
	"github.com/taibuivan/salonbook/internal/tokenstore"
)

// # Contracts & Types

// Navigator performs the redirect-to-login side effect of the front-end.
type Navigator interface {
	RedirectToLogin(ctx context.Context)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(ctx context.Context)

// RedirectToLogin calls f.
func (f NavigatorFunc) RedirectToLogin(ctx context.Context) { f(ctx) }

// Session exposes the authentication lifecycle over the API client.
//
// # Ownership
//
// Session is the only component that writes or clears the token store.
// It performs no locking: the front-end issues one auth operation at a time.
type Session struct {
	client    *apiclient.Client
	store     tokenstore.Store
	navigator Navigator
	logger    *slog.Logger
	now       func() time.Time
}

// NewSession constructs a [Session] and registers it as the client's 401
// handler, so any rejected authenticated call forces a local logout.
// navigator may be nil when no redirect is possible.
func NewSession(client *apiclient.Client, store tokenstore.Store, navigator Navigator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	session := &Session{
		client:    client,
		store:     store,
		navigator: navigator,
		logger:    logger,
		now:       time.Now,
	}
	client.OnUnauthorized(session.HandleUnauthorized)
	return session
}

// # Authentication Flow

/*
Login authenticates with email and password.

Description: Validates the input locally, posts the credentials without any
prior token and stores the access token when the response carries one.

Returns:
  - *apiclient.Envelope[LoginData]: The full server reply, message included
  - error: 422 for local or remote validation failures, 401 for bad credentials
*/
func (session *Session) Login(ctx context.Context, email, password string) (*apiclient.Envelope[LoginData], error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, "Email", email).
		Email(FieldEmail, email).
		Required(FieldPassword, "Password", password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	envelope, err := apiclient.Call[LoginData](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointLogin,
		Body:     loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}

	if envelope.AccessToken != "" {
		session.store.Write(ctx, envelope.AccessToken)
		session.logger.InfoContext(ctx, "session_started", slog.String("email", email))
	}

	return envelope, nil
}

/*
Logout ends the session remotely and always locally.

Description: The remote invalidation is attempted first; the local token is
cleared afterwards whatever happened to that call, including cancellation of
ctx. Remote failures are logged, never returned.
*/
func (session *Session) Logout(ctx context.Context) {
	defer session.store.Clear(context.WithoutCancel(ctx))

	_, err := apiclient.Call[apiclient.Empty](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointLogout,
		Auth:     true,
		Probe:    true,
	})
	if err != nil {
		session.logger.WarnContext(ctx, "logout_remote_failed", slog.Any("error", err))
		return
	}

	session.logger.InfoContext(ctx, "session_ended")
}

// Profile fetches the authenticated account. It doubles as a token probe.
func (session *Session) Profile(ctx context.Context) (*User, error) {
	return session.profile(ctx, false)
}

func (session *Session) profile(ctx context.Context, probe bool) (*User, error) {
	envelope, err := apiclient.Call[User](ctx, session.client, apiclient.Request{
		Method:   http.MethodGet,
		Endpoint: EndpointProfile,
		Auth:     true,
		Probe:    probe,
	})
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// IsAuthenticated reports whether a token is stored. It does not validate it.
func (session *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := session.store.Read(ctx)
	return ok
}

// StoredToken returns the stored token, if any.
func (session *Session) StoredToken(ctx context.Context) (string, bool) {
	return session.store.Read(ctx)
}

// HandleUnauthorized is the client's 401 hook: the token is dropped and the
// front-end is sent to the login screen.
func (session *Session) HandleUnauthorized(ctx context.Context) {
	session.logger.WarnContext(ctx, "session_rejected_by_server")
	session.store.Clear(context.WithoutCancel(ctx))
	if session.navigator != nil {
		session.navigator.RedirectToLogin(ctx)
	}
}

// # Registration & Recovery

// RegisterVendor enrols a new salon owner. The account must verify its email
// before it can log in.
func (session *Session) RegisterVendor(ctx context.Context, input RegisterVendorInput) (*apiclient.Envelope[User], error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, "Name", input.Name).
		Required(FieldBusinessName, "Business name", input.BusinessName).
		Required(FieldEmail, "Email", input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, "Password", input.Password).
		MinLen(FieldPassword, "Password", input.Password, MinPasswordLength).
		Match(FieldPasswordConfirmation, "Password confirmation", input.PasswordConfirmation, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return apiclient.Call[User](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointRegisterVendor,
		Body:     input,
	})
}

// VerifyEmail submits the emailed verification code.
func (session *Session) VerifyEmail(ctx context.Context, email, code string) (*apiclient.Envelope[apiclient.Empty], error) {
	return apiclient.Call[apiclient.Empty](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointVerifyEmail,
		Body:     verifyEmailRequest{Email: email, Code: code},
	})
}

// ResendVerification asks for a new verification code.
func (session *Session) ResendVerification(ctx context.Context, email string) (*apiclient.Envelope[apiclient.Empty], error) {
	return apiclient.Call[apiclient.Empty](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointResendVerification,
		Body:     emailRequest{Email: email},
	})
}

// ForgotPassword starts password recovery for email.
func (session *Session) ForgotPassword(ctx context.Context, email string) (*apiclient.Envelope[apiclient.Empty], error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, "Email", email).Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return apiclient.Call[apiclient.Empty](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointForgotPassword,
		Body:     emailRequest{Email: email},
	})
}

// ResetPassword sets a new password using the emailed reset token.
func (session *Session) ResetPassword(ctx context.Context, input ResetPasswordInput) (*apiclient.Envelope[apiclient.Empty], error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, "Email", input.Email).
		Required(FieldToken, "Reset token", input.Token).
		Required(FieldPassword, "Password", input.Password).
		MinLen(FieldPassword, "Password", input.Password, MinPasswordLength).
		Match(FieldPasswordConfirmation, "Password confirmation", input.PasswordConfirmation, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return apiclient.Call[apiclient.Empty](ctx, session.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: EndpointResetPassword,
		Body:     input,
	})
}
