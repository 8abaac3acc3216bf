// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/salonbook/internal/auth"
	"github.com/taibuivan/salonbook/internal/platform/middleware"
	"github.com/taibuivan/salonbook/internal/platform/respond"
	"github.com/taibuivan/salonbook/internal/platform/sec"
	"github.com/taibuivan/salonbook/internal/salon"
)

// Handler serves every endpoint of the stub.
type Handler struct {
	data        *Data
	tokens      *sec.TokenService
	revocations Revocations
	outbox      *Outbox
	tokenTTL    time.Duration
}

// NewHandler wires the stub endpoints.
func NewHandler(data *Data, tokens *sec.TokenService, revocations Revocations, outbox *Outbox, tokenTTL time.Duration) *Handler {
	return &Handler{
		data:        data,
		tokens:      tokens,
		revocations: revocations,
		outbox:      outbox,
		tokenTTL:    tokenTTLOrDefault(tokenTTL),
	}
}

// Outbox exposes the mail the stub pretended to send.
func (handler *Handler) Outbox() *Outbox { return handler.outbox }

// Routes returns the router mounted under the API prefix.
//
// Bearer verification happens upstream in [middleware.Authenticate]; this
// router only decides which routes require it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Public
	router.Post(auth.EndpointLogin, handler.login)
	router.Post(auth.EndpointRegisterVendor, handler.registerVendor)
	router.Post(auth.EndpointVerifyEmail, handler.verifyEmail)
	router.Post(auth.EndpointResendVerification, handler.resendVerification)
	router.Post(auth.EndpointForgotPassword, handler.forgotPassword)
	router.Post(auth.EndpointResetPassword, handler.resetPassword)

	// # Protected
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post(auth.EndpointLogout, handler.logout)
		protected.Get(auth.EndpointProfile, handler.profile)
		protected.Get(salon.EndpointDashboard, handler.dashboard)

		protected.Route(salon.EndpointAppointments, func(r chi.Router) {
			// The static segment takes precedence over {id}.
			r.Get(strings.TrimPrefix(salon.EndpointAppointmentFormData, salon.EndpointAppointments), handler.appointmentFormData)
			appointments.mount(r, handler.data)
		})
		protected.Route(salon.EndpointServices, func(r chi.Router) { services.mount(r, handler.data) })
		protected.Route(salon.EndpointCustomers, func(r chi.Router) { customers.mount(r, handler.data) })
		protected.Route(salon.EndpointBranches, func(r chi.Router) { branches.mount(r, handler.data) })
		protected.Route(salon.EndpointStaff, func(r chi.Router) { staffMembers.mount(r, handler.data) })
	})

	return router
}

// dashboard handles GET /dashboard.
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	handler.data.mu.RLock()
	summary := handler.data.dashboard()
	handler.data.mu.RUnlock()

	respond.OK(writer, summary)
}

// appointmentFormData handles GET /appointments/form-data.
func (handler *Handler) appointmentFormData(writer http.ResponseWriter, request *http.Request) {
	handler.data.mu.RLock()
	form := handler.data.formData()
	handler.data.mu.RUnlock()

	respond.OK(writer, form)
}
