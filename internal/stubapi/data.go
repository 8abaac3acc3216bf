// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stubapi is an in-memory development server that speaks the same
wire contract as the production salon API.

It exists so the client, the CLI and their end-to-end tests can run without
a real backend: real bearer tokens with real expiry, 401 on missing or revoked
tokens, 422 with per-field messages, and Laravel-style paginated lists.

Nothing is persisted. Every restart starts from the seed data.
*/
package stubapi

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/salonbook/internal/auth"
	"github.com/taibuivan/salonbook/internal/platform/sec"
	"github.com/taibuivan/salonbook/internal/salon"
)

// # Storage Primitives

// table is an auto-incrementing map of rows. It is not safe for concurrent
// use on its own; [Data] guards every table with one lock.
type table[T any] struct {
	rows   map[int64]T
	nextID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(build func(id int64) T) T {
	t.nextID++
	row := build(t.nextID)
	t.rows[t.nextID] = row
	return row
}

func (t *table[T]) get(id int64) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id int64, row T) {
	t.rows[id] = row
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list returns every row ordered by id.
func (t *table[T]) list() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *table[T]) exists(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// # Accounts

// account is a user with the secrets the API never returns.
type account struct {
	user         auth.User
	passwordHash string
	verifyCode   string
	resetToken   string
}

// # Data

// Data is the whole in-memory database of the stub.
type Data struct {
	mu sync.RWMutex

	accounts   map[string]*account
	nextUserID int64
	nextVendor int64

	branches     *table[salon.Branch]
	staff        *table[salon.Staff]
	services     *table[salon.Service]
	customers    *table[salon.Customer]
	appointments *table[salon.Appointment]

	now func() time.Time
}

// NewData creates the database with one verified owner account and a small
// salon around it.
func NewData(seedEmail, seedPassword string, now func() time.Time) (*Data, error) {
	if now == nil {
		now = time.Now
	}

	data := &Data{
		accounts:     make(map[string]*account),
		branches:     newTable[salon.Branch](),
		staff:        newTable[salon.Staff](),
		services:     newTable[salon.Service](),
		customers:    newTable[salon.Customer](),
		appointments: newTable[salon.Appointment](),
		now:          now,
	}

	hash, err := sec.HashPassword(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("stubapi: seed account: %w", err)
	}

	owner := data.addAccount("Salon Owner", "Salonbook Studio", seedEmail, "", hash)
	verifiedAt := now()
	owner.user.EmailVerifiedAt = &verifiedAt

	data.seed()
	return data, nil
}

// addAccount registers an unverified vendor account. The caller holds the lock.
func (data *Data) addAccount(name, businessName, email, phone, passwordHash string) *account {
	data.nextUserID++
	data.nextVendor++

	created := &account{
		user: auth.User{
			ID:           data.nextUserID,
			Name:         name,
			Email:        email,
			Phone:        phone,
			Role:         "vendor",
			VendorID:     data.nextVendor,
			BusinessName: businessName,
			CreatedAt:    data.now(),
		},
		passwordHash: passwordHash,
	}
	data.accounts[normalizeEmail(email)] = created
	return created
}

// accountByEmail looks up an account. The caller holds the lock.
func (data *Data) accountByEmail(email string) (*account, bool) {
	found, ok := data.accounts[normalizeEmail(email)]
	return found, ok
}

// accountByID looks up an account by user id. The caller holds the lock.
func (data *Data) accountByID(id int64) (*account, bool) {
	for _, candidate := range data.accounts {
		if candidate.user.ID == id {
			return candidate, true
		}
	}
	return nil, false
}

func (data *Data) seed() {
	now := data.now()
	active := true

	downtown := data.branches.insert(func(id int64) salon.Branch {
		return salon.Branch{ID: id, Name: "Downtown", Address: "12 Main St", Phone: "555-0100", IsActive: active, CreatedAt: now}
	})
	data.branches.insert(func(id int64) salon.Branch {
		return salon.Branch{ID: id, Name: "Riverside", Address: "4 River Rd", Phone: "555-0101", IsActive: active, CreatedAt: now}
	})

	stylist := data.staff.insert(func(id int64) salon.Staff {
		return salon.Staff{ID: id, BranchID: downtown.ID, Name: "Linh Tran", Email: "linh@salonbook.dev", Position: "Senior Stylist", IsActive: active, CreatedAt: now}
	})
	data.staff.insert(func(id int64) salon.Staff {
		return salon.Staff{ID: id, BranchID: downtown.ID, Name: "Kenji Sato", Email: "kenji@salonbook.dev", Position: "Colorist", IsActive: active, CreatedAt: now}
	})

	cut := data.services.insert(func(id int64) salon.Service {
		return salon.Service{ID: id, Name: "Haircut", Price: decimal.RequireFromString("25.00"), DurationMinutes: 30, IsActive: active, CreatedAt: now}
	})
	color := data.services.insert(func(id int64) salon.Service {
		return salon.Service{ID: id, Name: "Hair Coloring", Price: decimal.RequireFromString("80.50"), DurationMinutes: 90, IsActive: active, CreatedAt: now}
	})
	data.services.insert(func(id int64) salon.Service {
		return salon.Service{ID: id, Name: "Manicure", Price: decimal.RequireFromString("18.00"), DurationMinutes: 45, IsActive: active, CreatedAt: now}
	})

	hana := data.customers.insert(func(id int64) salon.Customer {
		return salon.Customer{ID: id, Name: "Hana Kim", Email: "hana@example.com", Phone: "555-0200", CreatedAt: now}
	})
	mai := data.customers.insert(func(id int64) salon.Customer {
		return salon.Customer{ID: id, Name: "Mai Nguyen", Email: "mai@example.com", Phone: "555-0201", CreatedAt: now}
	})

	data.appointments.insert(func(id int64) salon.Appointment {
		return data.buildAppointment(id, salon.AppointmentInput{
			CustomerID: hana.ID,
			BranchID:   downtown.ID,
			StaffID:    stylist.ID,
			ServiceIDs: []int64{cut.ID},
			StartsAt:   now.Add(-2 * time.Hour),
			Status:     salon.StatusCompleted,
		}, now)
	})
	data.appointments.insert(func(id int64) salon.Appointment {
		return data.buildAppointment(id, salon.AppointmentInput{
			CustomerID: mai.ID,
			BranchID:   downtown.ID,
			StaffID:    stylist.ID,
			ServiceIDs: []int64{cut.ID, color.ID},
			StartsAt:   now.Add(26 * time.Hour),
			Status:     salon.StatusConfirmed,
		}, now)
	})
}

// buildAppointment resolves relations and the total. The caller holds the lock
// and has validated every referenced id.
func (data *Data) buildAppointment(id int64, input salon.AppointmentInput, createdAt time.Time) salon.Appointment {
	status := input.Status
	if status == "" {
		status = salon.StatusPending
	}

	appointment := salon.Appointment{
		ID:          id,
		CustomerID:  input.CustomerID,
		BranchID:    input.BranchID,
		StaffID:     input.StaffID,
		ServiceIDs:  slices.Clone(input.ServiceIDs),
		StartsAt:    input.StartsAt,
		Status:      status,
		Notes:       input.Notes,
		TotalAmount: decimal.Zero,
		CreatedAt:   createdAt,
	}

	if customer, ok := data.customers.get(input.CustomerID); ok {
		appointment.Customer = &customer
	}
	if member, ok := data.staff.get(input.StaffID); ok {
		appointment.Staff = &member
	}
	for _, serviceID := range input.ServiceIDs {
		if service, ok := data.services.get(serviceID); ok {
			appointment.Services = append(appointment.Services, service)
			appointment.TotalAmount = appointment.TotalAmount.Add(service.Price)
		}
	}

	return appointment
}

// # Read Models

// dashboard aggregates the home screen. The caller holds the read lock.
func (data *Data) dashboard() salon.Dashboard {
	now := data.now()
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())

	summary := salon.Dashboard{
		TotalCustomers:   len(data.customers.rows),
		TotalServices:    len(data.services.rows),
		TotalStaff:       len(data.staff.rows),
		TotalBranches:    len(data.branches.rows),
		RevenueThisMonth: decimal.Zero,
	}

	appointments := data.appointments.list()
	for _, appointment := range appointments {
		startsAt := appointment.StartsAt.In(now.Location())

		if !startsAt.Before(startOfDay) && startsAt.Before(startOfDay.AddDate(0, 0, 1)) {
			summary.TodayAppointments++
		}
		if startsAt.After(now) && appointment.Status != salon.StatusCancelled {
			summary.UpcomingAppointments++
		}
		if appointment.Status == salon.StatusCompleted && !startsAt.Before(startOfMonth) {
			summary.RevenueThisMonth = summary.RevenueThisMonth.Add(appointment.TotalAmount)
		}
	}

	slices.SortFunc(appointments, func(a, b salon.Appointment) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	summary.RecentAppointments = appointments[:min(len(appointments), 5)]

	return summary
}

// formData lists every option of the booking form. The caller holds the read lock.
func (data *Data) formData() salon.AppointmentFormData {
	return salon.AppointmentFormData{
		Customers: data.customers.list(),
		Services:  data.services.list(),
		Staff:     data.staff.list(),
		Branches:  data.branches.list(),
		Statuses: []salon.AppointmentStatus{
			salon.StatusPending,
			salon.StatusConfirmed,
			salon.StatusCompleted,
			salon.StatusCancelled,
			salon.StatusNoShow,
		},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
