// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/salonbook/internal/auth"
	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/platform/constants"
	"github.com/taibuivan/salonbook/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/salonbook/internal/platform/request"
	"github.com/taibuivan/salonbook/internal/platform/respond"
	"github.com/taibuivan/salonbook/internal/platform/sec"
	"github.com/taibuivan/salonbook/internal/platform/validate"
	"github.com/taibuivan/salonbook/pkg/uuidv7"
)

// # Messages

const (
	messageLoginSuccess      = "Login successful"
	messageInvalidLogin      = "Invalid credentials"
	messageLoggedOut         = "Logged out successfully"
	messageRegistered        = "Registration successful. Please verify your email."
	messageEmailVerified     = "Email verified successfully"
	messageVerificationSent  = "If the account exists, a verification code has been sent."
	messageResetLinkSent     = "If the email exists, a reset link has been sent."
	messagePasswordReset     = "Password has been reset successfully"
	messageEmailTaken        = "The email has already been taken."
	messageInvalidCode       = "Invalid verification code"
	messageInvalidResetToken = "This password reset token is invalid."
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailBody struct {
	Email string `json:"email"`
}

type verifyBody struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// login handles POST /login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body credentials
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, "Email", body.Email).
		Email(auth.FieldEmail, body.Email).
		Required(auth.FieldPassword, "Password", body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.data.mu.RLock()
	found, ok := handler.data.accountByEmail(body.Email)
	var user auth.User
	var hash string
	if ok {
		user, hash = found.user, found.passwordHash
	}
	handler.data.mu.RUnlock()

	if !ok || !sec.CheckPasswordHash(body.Password, hash) {
		respond.Error(writer, request, apperr.Unauthorized(messageInvalidLogin))
		return
	}

	token, err := handler.tokens.GenerateAccessToken(user.ID, user.Email, uuidv7.New(), handler.tokenTTL)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "user_logged_in", slog.Int64("user_id", user.ID))
	respond.Token(writer, messageLoginSuccess, token, auth.LoginData{User: &user})
}

// logout handles POST /logout by revoking the presented token.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	until := handler.data.now().Add(handler.tokenTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}

	if err := handler.revocations.Revoke(request.Context(), claims.ID, until); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.Message(writer, messageLoggedOut, nil)
}

// profile handles GET /profile.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.data.mu.RLock()
	found, ok := handler.data.accountByID(claims.UserID)
	var user auth.User
	if ok {
		user = found.user
	}
	handler.data.mu.RUnlock()

	if !ok {
		// The account behind a valid token is gone.
		respond.Error(writer, request, apperr.Unauthorized(messageInvalidLogin))
		return
	}

	respond.OK(writer, user)
}

// registerVendor handles POST /register-vendor.
func (handler *Handler) registerVendor(writer http.ResponseWriter, request *http.Request) {
	var body auth.RegisterVendorInput
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldName, "Name", body.Name).
		Required(auth.FieldBusinessName, "Business name", body.BusinessName).
		Required(auth.FieldEmail, "Email", body.Email).
		Email(auth.FieldEmail, body.Email).
		Required(auth.FieldPassword, "Password", body.Password).
		MinLen(auth.FieldPassword, "Password", body.Password, auth.MinPasswordLength).
		Match(auth.FieldPasswordConfirmation, "Password confirmation", body.PasswordConfirmation, body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	hash, err := sec.HashPassword(body.Password)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	code, err := sec.GenerateNumericCode(constants.VerificationCodeDigits)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.data.mu.Lock()
	if _, taken := handler.data.accountByEmail(body.Email); taken {
		handler.data.mu.Unlock()
		respond.Error(writer, request, apperr.Validation(validate.MessageFailed, map[string][]string{
			auth.FieldEmail: {messageEmailTaken},
		}))
		return
	}
	created := handler.data.addAccount(body.Name, body.BusinessName, body.Email, body.Phone, hash)
	created.verifyCode = code
	user := created.user
	handler.data.mu.Unlock()

	handler.outbox.send(request.Context(), Mail{To: user.Email, Kind: MailVerification, Secret: code})
	respond.Created(writer, messageRegistered, user)
}

// verifyEmail handles POST /verify-email.
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	var body verifyBody
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, "Email", body.Email).
		Required(auth.FieldCode, "Code", body.Code)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.data.mu.Lock()
	found, ok := handler.data.accountByEmail(body.Email)
	matched := ok && found.verifyCode != "" && found.verifyCode == body.Code
	if matched {
		verifiedAt := handler.data.now()
		found.user.EmailVerifiedAt = &verifiedAt
		found.verifyCode = ""
	}
	handler.data.mu.Unlock()

	if !matched {
		respond.Error(writer, request, apperr.Validation(validate.MessageFailed, map[string][]string{
			auth.FieldCode: {messageInvalidCode},
		}))
		return
	}

	respond.Message(writer, messageEmailVerified, nil)
}

// resendVerification handles POST /verify-email/resend. The reply never
// reveals whether the address exists.
func (handler *Handler) resendVerification(writer http.ResponseWriter, request *http.Request) {
	handler.issueSecret(writer, request, MailVerification, messageVerificationSent)
}

// forgotPassword handles POST /forgot-password.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	handler.issueSecret(writer, request, MailPasswordReset, messageResetLinkSent)
}

func (handler *Handler) issueSecret(writer http.ResponseWriter, request *http.Request, kind MailKind, message string) {
	var body emailBody
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, "Email", body.Email).Email(auth.FieldEmail, body.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var secret string
	var err error
	if kind == MailVerification {
		secret, err = sec.GenerateNumericCode(constants.VerificationCodeDigits)
	} else {
		secret, err = sec.GenerateSecureToken(32)
	}
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.data.mu.Lock()
	found, ok := handler.data.accountByEmail(body.Email)
	switch {
	case !ok:
	case kind == MailVerification && found.user.EmailVerifiedAt == nil:
		found.verifyCode = secret
	case kind == MailPasswordReset:
		found.resetToken = secret
	default:
		ok = false
	}
	handler.data.mu.Unlock()

	if ok {
		handler.outbox.send(request.Context(), Mail{To: body.Email, Kind: kind, Secret: secret})
	}
	respond.Message(writer, message, nil)
}

// resetPassword handles POST /reset-password.
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var body auth.ResetPasswordInput
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, "Email", body.Email).
		Required(auth.FieldToken, "Reset token", body.Token).
		Required(auth.FieldPassword, "Password", body.Password).
		MinLen(auth.FieldPassword, "Password", body.Password, auth.MinPasswordLength).
		Match(auth.FieldPasswordConfirmation, "Password confirmation", body.PasswordConfirmation, body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	hash, err := sec.HashPassword(body.Password)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.data.mu.Lock()
	found, ok := handler.data.accountByEmail(body.Email)
	matched := ok && found.resetToken != "" && found.resetToken == body.Token
	if matched {
		found.passwordHash = hash
		found.resetToken = ""
	}
	handler.data.mu.Unlock()

	if !matched {
		respond.Error(writer, request, apperr.Validation(validate.MessageFailed, map[string][]string{
			auth.FieldToken: {messageInvalidResetToken},
		}))
		return
	}

	respond.Message(writer, messagePasswordReset, nil)
}

// tokenTTLOrDefault keeps a zero TTL from issuing already-expired tokens.
func tokenTTLOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return constants.DefaultTokenTTL
	}
	return ttl
}
