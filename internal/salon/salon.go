// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package salon exposes the CRM resources of the salon API as typed facades:
appointments, customers, services, branches, staff and the dashboard.

Every call is authenticated. A 401 from any of them goes through the API
client's unauthorized hook like every other protected call.
*/
package salon

import (
	"time"

	"github.com/shopspring/decimal"
)

// # Domain Entities

// AppointmentStatus is the lifecycle of a booking.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Branch is one physical location of the salon.
type Branch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Staff is an employee who performs services.
type Staff struct {
	ID        int64     `json:"id"`
	BranchID  int64     `json:"branch_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Position  string    `json:"position,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Service is a bookable treatment.
type Service struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Customer is a client of the salon.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Appointment is a booking of one or more services.
type Appointment struct {
	ID          int64             `json:"id"`
	CustomerID  int64             `json:"customer_id"`
	BranchID    int64             `json:"branch_id"`
	StaffID     int64             `json:"staff_id,omitempty"`
	ServiceIDs  []int64           `json:"service_ids"`
	StartsAt    time.Time         `json:"starts_at"`
	Status      AppointmentStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Notes       string            `json:"notes,omitempty"`
	Customer    *Customer         `json:"customer,omitempty"`
	Staff       *Staff            `json:"staff,omitempty"`
	Services    []Service         `json:"services,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// AppointmentFormData is everything the booking form needs in one call.
type AppointmentFormData struct {
	Customers []Customer          `json:"customers"`
	Services  []Service           `json:"services"`
	Staff     []Staff             `json:"staff"`
	Branches  []Branch            `json:"branches"`
	Statuses  []AppointmentStatus `json:"statuses"`
}

// Dashboard is the home screen summary.
type Dashboard struct {
	TodayAppointments    int             `json:"today_appointments"`
	UpcomingAppointments int             `json:"upcoming_appointments"`
	TotalCustomers       int             `json:"total_customers"`
	TotalServices        int             `json:"total_services"`
	TotalStaff           int             `json:"total_staff"`
	TotalBranches        int             `json:"total_branches"`
	RevenueThisMonth     decimal.Decimal `json:"revenue_this_month"`
	RecentAppointments   []Appointment   `json:"recent_appointments"`
}

// # Write Payloads

// BranchInput creates or updates a branch.
type BranchInput struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// StaffInput creates or updates a staff member.
type StaffInput struct {
	BranchID int64  `json:"branch_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ServiceInput creates or updates a service.
type ServiceInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	IsActive        *bool           `json:"is_active,omitempty"`
}

// CustomerInput creates or updates a customer.
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// AppointmentInput creates or updates an appointment.
type AppointmentInput struct {
	CustomerID int64             `json:"customer_id"`
	BranchID   int64             `json:"branch_id"`
	StaffID    int64             `json:"staff_id,omitempty"`
	ServiceIDs []int64           `json:"service_ids"`
	StartsAt   time.Time         `json:"starts_at"`
	Status     AppointmentStatus `json:"status,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// # Endpoints

const (
	EndpointDashboard           = "/dashboard"
	EndpointAppointments        = "/appointments"
	EndpointAppointmentFormData = "/appointments/form-data"
	EndpointServices            = "/services"
	EndpointCustomers           = "/customers"
	EndpointBranches            = "/branches"
	EndpointStaff               = "/staff"
)
