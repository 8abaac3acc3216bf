// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package salon

import (
	"context"
	"net/http"

	"github.com/taibuivan/salonbook/internal/apiclient"
)

// API groups every salon facade over one client.
type API struct {
	client *apiclient.Client

	Appointments *Resource[Appointment, AppointmentInput]
	Customers    *Resource[Customer, CustomerInput]
	Services     *Resource[Service, ServiceInput]
	Branches     *Resource[Branch, BranchInput]
	Staff        *Resource[Staff, StaffInput]
}

// New constructs the salon facades.
func New(client *apiclient.Client) *API {
	return &API{
		client:       client,
		Appointments: NewResource[Appointment, AppointmentInput](client, EndpointAppointments),
		Customers:    NewResource[Customer, CustomerInput](client, EndpointCustomers),
		Services:     NewResource[Service, ServiceInput](client, EndpointServices),
		Branches:     NewResource[Branch, BranchInput](client, EndpointBranches),
		Staff:        NewResource[Staff, StaffInput](client, EndpointStaff),
	}
}

// Dashboard fetches the home screen summary.
func (api *API) Dashboard(ctx context.Context) (*Dashboard, error) {
	envelope, err := apiclient.Call[Dashboard](ctx, api.client, apiclient.Request{
		Method:   http.MethodGet,
		Endpoint: EndpointDashboard,
		Auth:     true,
	})
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// AppointmentFormData fetches the option lists of the booking form.
func (api *API) AppointmentFormData(ctx context.Context) (*AppointmentFormData, error) {
	envelope, err := apiclient.Call[AppointmentFormData](ctx, api.client, apiclient.Request{
		Method:   http.MethodGet,
		Endpoint: EndpointAppointmentFormData,
		Auth:     true,
	})
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
