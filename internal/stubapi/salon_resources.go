// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"slices"

	"github.com/taibuivan/salonbook/internal/platform/validate"
	"github.com/taibuivan/salonbook/internal/salon"
	"github.com/taibuivan/salonbook/pkg/pointer"
)

// # Collections

var branches = resource[salon.Branch, salon.BranchInput]{
	name:  "Branch",
	table: func(data *Data) *table[salon.Branch] { return data.branches },
	matches: func(row salon.Branch, search string) bool {
		return containsFold(row.Name, search) || containsFold(row.Address, search)
	},
	validate: func(_ *Data, input salon.BranchInput) error {
		return (&validate.Validator{}).Required("name", "Name", input.Name).Err()
	},
	build: func(data *Data, id int64, input salon.BranchInput, existing *salon.Branch) salon.Branch {
		row := salon.Branch{ID: id, IsActive: true, CreatedAt: data.now()}
		if existing != nil {
			row = *existing
		}
		row.Name, row.Address, row.Phone = input.Name, input.Address, input.Phone
		row.IsActive = pointer.Fallback(input.IsActive, row.IsActive)
		return row
	},
}

var staffMembers = resource[salon.Staff, salon.StaffInput]{
	name:  "Staff",
	table: func(data *Data) *table[salon.Staff] { return data.staff },
	matches: func(row salon.Staff, search string) bool {
		return containsFold(row.Name, search) || containsFold(row.Email, search) || containsFold(row.Position, search)
	},
	validate: func(data *Data, input salon.StaffInput) error {
		validator := &validate.Validator{}
		return validator.Required("name", "Name", input.Name).
			Email("email", input.Email).
			Custom("branch_id", !data.branches.exists(input.BranchID), "The selected branch is invalid.").
			Err()
	},
	build: func(data *Data, id int64, input salon.StaffInput, existing *salon.Staff) salon.Staff {
		row := salon.Staff{ID: id, IsActive: true, CreatedAt: data.now()}
		if existing != nil {
			row = *existing
		}
		row.BranchID, row.Name, row.Email, row.Phone, row.Position = input.BranchID, input.Name, input.Email, input.Phone, input.Position
		row.IsActive = pointer.Fallback(input.IsActive, row.IsActive)
		return row
	},
}

var services = resource[salon.Service, salon.ServiceInput]{
	name:  "Service",
	table: func(data *Data) *table[salon.Service] { return data.services },
	matches: func(row salon.Service, search string) bool {
		return containsFold(row.Name, search) || containsFold(row.Description, search)
	},
	validate: func(_ *Data, input salon.ServiceInput) error {
		validator := &validate.Validator{}
		return validator.Required("name", "Name", input.Name).
			Custom("price", input.Price.IsNegative(), "The price must be at least 0.").
			Custom("duration_minutes", input.DurationMinutes < 1, "The duration must be at least 1 minute.").
			Err()
	},
	build: func(data *Data, id int64, input salon.ServiceInput, existing *salon.Service) salon.Service {
		row := salon.Service{ID: id, IsActive: true, CreatedAt: data.now()}
		if existing != nil {
			row = *existing
		}
		row.Name, row.Description, row.Price, row.DurationMinutes = input.Name, input.Description, input.Price, input.DurationMinutes
		row.IsActive = pointer.Fallback(input.IsActive, row.IsActive)
		return row
	},
}

var customers = resource[salon.Customer, salon.CustomerInput]{
	name:  "Customer",
	table: func(data *Data) *table[salon.Customer] { return data.customers },
	matches: func(row salon.Customer, search string) bool {
		return containsFold(row.Name, search) || containsFold(row.Email, search) || containsFold(row.Phone, search)
	},
	validate: func(_ *Data, input salon.CustomerInput) error {
		validator := &validate.Validator{}
		return validator.Required("name", "Name", input.Name).Email("email", input.Email).Err()
	},
	build: func(data *Data, id int64, input salon.CustomerInput, existing *salon.Customer) salon.Customer {
		row := salon.Customer{ID: id, CreatedAt: data.now()}
		if existing != nil {
			row = *existing
		}
		row.Name, row.Email, row.Phone, row.Notes = input.Name, input.Email, input.Phone, input.Notes
		return row
	},
}

var appointments = resource[salon.Appointment, salon.AppointmentInput]{
	name:  "Appointment",
	table: func(data *Data) *table[salon.Appointment] { return data.appointments },
	matches: func(row salon.Appointment, search string) bool {
		if row.Customer != nil && containsFold(row.Customer.Name, search) {
			return true
		}
		return containsFold(string(row.Status), search) || containsFold(row.Notes, search)
	},
	validate: func(data *Data, input salon.AppointmentInput) error {
		validator := &validate.Validator{}
		validator.
			Custom("customer_id", !data.customers.exists(input.CustomerID), "The selected customer is invalid.").
			Custom("branch_id", !data.branches.exists(input.BranchID), "The selected branch is invalid.").
			Custom("staff_id", input.StaffID != 0 && !data.staff.exists(input.StaffID), "The selected staff is invalid.").
			Custom("service_ids", len(input.ServiceIDs) == 0, "At least one service is required.").
			Custom("service_ids", slices.ContainsFunc(input.ServiceIDs, func(id int64) bool { return !data.services.exists(id) }), "The selected services are invalid.").
			Custom("starts_at", input.StartsAt.IsZero(), "The start time is required.").
			Custom("status", input.Status != "" && !input.Status.Valid(), "The selected status is invalid.")
		return validator.Err()
	},
	build: func(data *Data, id int64, input salon.AppointmentInput, existing *salon.Appointment) salon.Appointment {
		createdAt := data.now()
		if existing != nil {
			createdAt = existing.CreatedAt
			if input.Status == "" {
				input.Status = existing.Status
			}
		}
		return data.buildAppointment(id, input, createdAt)
	},
}
