// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/salonbook/internal/api"
	"github.com/taibuivan/salonbook/internal/apiclient"
	"github.com/taibuivan/salonbook/internal/auth"
	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/platform/config"
	"github.com/taibuivan/salonbook/internal/platform/constants"
	"github.com/taibuivan/salonbook/internal/platform/sec"
	"github.com/taibuivan/salonbook/internal/salon"
	"github.com/taibuivan/salonbook/internal/stubapi"
	"github.com/taibuivan/salonbook/internal/tokenstore"
	"github.com/taibuivan/salonbook/pkg/pagination"
)

const (
	seedEmail    = "owner@salonbook.dev"
	seedPassword = "password123"
)

// harness is a full client stack talking to an in-process stub server.
type harness struct {
	baseURL   string
	store     *tokenstore.MemoryStore
	client    *apiclient.Client
	session   *auth.Session
	salon     *salon.API
	outbox    *stubapi.Outbox
	redirects atomic.Int32
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	data, err := stubapi.NewData(seedEmail, seedPassword, time.Now)
	require.NoError(t, err)

	tokens, err := sec.NewTokenService("test-secret", constants.AuthIssuer)
	require.NoError(t, err)

	revocations := stubapi.NewMemoryRevocations()
	outbox := stubapi.NewOutbox()
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	cfg := &config.StubConfig{Port: "0", Environment: "test"}
	server := api.NewServer(ctx, cfg, logger, stubapi.NewVerifier(tokens, revocations), api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Stub:      stubapi.NewHandler(data, tokens, revocations, outbox, time.Hour),
	})

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	h := &harness{baseURL: httpServer.URL, store: tokenstore.NewMemoryStore(), outbox: outbox}
	h.client = apiclient.New(h.store, apiclient.Options{
		BaseURL: httpServer.URL + constants.DefaultAPIPrefix,
		Timeout: 5 * time.Second,
		Logger:  logger,
	})
	h.session = auth.NewSession(h.client, h.store, auth.NavigatorFunc(func(ctx context.Context) {
		h.redirects.Add(1)
	}), logger)
	h.salon = salon.New(h.client)
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.session.Login(context.Background(), seedEmail, seedPassword)
	require.NoError(t, err)
}

/*
TestStub_LoginGateAndLogout walks the whole session lifecycle.
*/
func TestStub_LoginGateAndLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	envelope, err := h.session.Login(ctx, seedEmail, seedPassword)
	require.NoError(t, err)
	assert.Equal(t, "Login successful", envelope.Message)
	require.NotNil(t, envelope.Data.User)
	assert.Equal(t, seedEmail, envelope.Data.User.Email)

	token, ok := h.store.Read(ctx)
	require.True(t, ok)
	assert.False(t, auth.TokenExpired(token, time.Now()))

	gate := auth.NewGate(h.session, auth.GateOptions{Redirect: true})
	assert.Equal(t, auth.StateAuthenticated, gate.Check(ctx))
	assert.Equal(t, seedEmail, gate.Profile().Email)

	h.session.Logout(ctx)
	_, ok = h.store.Read(ctx)
	assert.False(t, ok)
	assert.Equal(t, int32(0), h.redirects.Load())

	// The revoked token is refused server-side even though it has not expired.
	h.store.Write(ctx, token)
	_, err = h.salon.Dashboard(ctx)
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Equal(t, int32(1), h.redirects.Load())
	_, ok = h.store.Read(ctx)
	assert.False(t, ok)
}

/*
TestStub_LoginFailures covers local validation and bad credentials.
*/
func TestStub_LoginFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.session.Login(ctx, "", "")
	assert.True(t, apperr.IsValidation(err))

	_, err = h.session.Login(ctx, seedEmail, "wrong-password")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "Invalid credentials", ae.Message)

	// A failed login is not a session expiry.
	assert.Equal(t, int32(0), h.redirects.Load())
	assert.False(t, h.session.IsAuthenticated(ctx))
}

/*
TestStub_GateRejectsForgedToken clears the token and redirects once.
*/
func TestStub_GateRejectsForgedToken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	forger, err := sec.NewTokenService("other-secret", constants.AuthIssuer)
	require.NoError(t, err)
	forged, err := forger.GenerateAccessToken(1, seedEmail, "forged", time.Hour)
	require.NoError(t, err)
	h.store.Write(ctx, forged)

	gate := auth.NewGate(h.session, auth.GateOptions{Redirect: true})

	assert.Equal(t, auth.StateUnauthenticated, gate.Check(ctx))
	assert.Equal(t, int32(1), h.redirects.Load())
	assert.False(t, h.session.IsAuthenticated(ctx))
}

/*
TestStub_ProtectedWithoutToken returns 401 from every salon endpoint.
*/
func TestStub_ProtectedWithoutToken(t *testing.T) {
	h := newHarness(t)

	_, err := h.salon.Customers.List(context.Background(), pagination.Params{})

	assert.True(t, apperr.IsUnauthorized(err))
	assert.Equal(t, int32(1), h.redirects.Load())
}

/*
TestStub_SalonResources exercises listing, CRUD and aggregates.
*/
func TestStub_SalonResources(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	services, err := h.salon.Services.List(ctx, pagination.Params{PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, services.Items, 2)
	assert.Equal(t, 3, services.Total)
	assert.True(t, services.HasMore())

	searched, err := h.salon.Services.List(ctx, pagination.Params{Search: "colo"})
	require.NoError(t, err)
	require.Len(t, searched.Items, 1)
	assert.Equal(t, "80.50", searched.Items[0].Price.StringFixed(2))

	created, err := h.salon.Customers.Create(ctx, salon.CustomerInput{Name: "Yuki", Email: "yuki@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Customer created successfully", created.Message)
	customerID := created.Data.ID

	_, err = h.salon.Customers.Create(ctx, salon.CustomerInput{Email: "not-an-email"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnprocessableEntity, ae.Status)
	assert.Equal(t, []string{"Name is required"}, ae.Errors["name"])
	assert.Equal(t, "Must be a valid email address", ae.UserMessage())

	booked, err := h.salon.Appointments.Create(ctx, salon.AppointmentInput{
		CustomerID: customerID,
		BranchID:   1,
		ServiceIDs: []int64{1, 3},
		StartsAt:   time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, salon.StatusPending, booked.Data.Status)
	assert.True(t, decimal.RequireFromString("43").Equal(booked.Data.TotalAmount))
	require.NotNil(t, booked.Data.Customer)
	assert.Equal(t, "Yuki", booked.Data.Customer.Name)

	updated, err := h.salon.Appointments.Update(ctx, booked.Data.ID, salon.AppointmentInput{
		CustomerID: customerID,
		BranchID:   1,
		ServiceIDs: []int64{1},
		StartsAt:   booked.Data.StartsAt,
		Status:     salon.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, salon.StatusCancelled, updated.Data.Status)

	_, err = h.salon.Appointments.Create(ctx, salon.AppointmentInput{CustomerID: 999, BranchID: 1})
	assert.True(t, apperr.IsValidation(err))

	_, err = h.salon.Customers.Delete(ctx, customerID)
	require.NoError(t, err)
	_, err = h.salon.Customers.Get(ctx, customerID)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "Customer not found", ae.Message)

	dashboard, err := h.salon.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.TotalBranches)
	assert.Equal(t, 3, dashboard.TotalServices)
	assert.NotEmpty(t, dashboard.RecentAppointments)

	form, err := h.salon.AppointmentFormData(ctx)
	require.NoError(t, err)
	assert.Len(t, form.Branches, 2)
	assert.Len(t, form.Statuses, 5)

	// None of this touched the session.
	assert.Equal(t, int32(0), h.redirects.Load())
}

/*
TestStub_RegisterAndVerify covers vendor sign-up with the emailed code.
*/
func TestStub_RegisterAndVerify(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	input := auth.RegisterVendorInput{
		Name:                 "An Pham",
		BusinessName:         "An Nails",
		Email:                "an@example.com",
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
	}

	registered, err := h.session.RegisterVendor(ctx, input)
	require.NoError(t, err)
	assert.Nil(t, registered.Data.EmailVerifiedAt)

	_, err = h.session.RegisterVendor(ctx, input)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "The email has already been taken.", ae.UserMessage())

	_, err = h.session.VerifyEmail(ctx, input.Email, "000000x")
	assert.True(t, apperr.IsValidation(err))

	mail, ok := h.outbox.Last(input.Email, stubapi.MailVerification)
	require.True(t, ok)

	verified, err := h.session.VerifyEmail(ctx, input.Email, mail.Secret)
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully", verified.Message)

	_, err = h.session.Login(ctx, input.Email, input.Password)
	require.NoError(t, err)

	profile, err := h.session.Profile(ctx)
	require.NoError(t, err)
	assert.NotNil(t, profile.EmailVerifiedAt)
	assert.Equal(t, "An Nails", profile.BusinessName)
}

/*
TestStub_PasswordRecovery resets the password through the emailed token.
*/
func TestStub_PasswordRecovery(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sent, err := h.session.ForgotPassword(ctx, seedEmail)
	require.NoError(t, err)
	assert.NotEmpty(t, sent.Message)

	// Unknown addresses get the same answer.
	_, err = h.session.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)

	mail, ok := h.outbox.Last(seedEmail, stubapi.MailPasswordReset)
	require.True(t, ok)

	_, err = h.session.ResetPassword(ctx, auth.ResetPasswordInput{
		Email: seedEmail, Token: "bogus", Password: "new-password", PasswordConfirmation: "new-password",
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = h.session.ResetPassword(ctx, auth.ResetPasswordInput{
		Email: seedEmail, Token: mail.Secret, Password: "new-password", PasswordConfirmation: "new-password",
	})
	require.NoError(t, err)

	_, err = h.session.Login(ctx, seedEmail, seedPassword)
	assert.True(t, apperr.IsUnauthorized(err))

	_, err = h.session.Login(ctx, seedEmail, "new-password")
	require.NoError(t, err)
}

/*
TestStub_Health answers probes outside the API prefix.
*/
func TestStub_Health(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/health", "/ready"} {
		response, err := http.Get(h.baseURL + path)
		require.NoError(t, err)
		_ = response.Body.Close()
		assert.Equal(t, http.StatusOK, response.StatusCode, path)
	}
}
