// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/salonbook/internal/auth"
	"github.com/taibuivan/salonbook/internal/salon"
	"github.com/taibuivan/salonbook/pkg/convert"
	"github.com/taibuivan/salonbook/pkg/pagination"
	"github.com/taibuivan/salonbook/pkg/query"
)

func commandTable() map[string]command {
	commands := []command{
		{name: "login", summary: "sign in and store the access token", run: runLogin},
		{name: "logout", summary: "end the session", run: runLogout},
		{name: "register", summary: "create a vendor account", run: runRegister},
		{name: "verify-email", summary: "confirm an email with its code (-resend for a new one)", run: runVerifyEmail},
		{name: "forgot-password", summary: "email a password reset token", run: runForgotPassword},
		{name: "reset-password", summary: "set a new password with a reset token", run: runResetPassword},
		{name: "whoami", summary: "show the signed-in account", protected: true, run: runWhoami},
		{name: "dashboard", summary: "show today's summary", protected: true, run: runDashboard},

		resourceCommand("appointments", "list|show|delete|create|status|options appointments",
			func(api *salon.API) *salon.Resource[salon.Appointment, salon.AppointmentInput] { return api.Appointments },
			[]string{"ID", "STARTS", "CUSTOMER", "STATUS", "TOTAL"},
			func(row salon.Appointment) []string {
				customer := strconv.FormatInt(row.CustomerID, 10)
				if row.Customer != nil {
					customer = row.Customer.Name
				}
				return []string{id(row.ID), row.StartsAt.Local().Format("2006-01-02 15:04"), customer, string(row.Status), row.TotalAmount.StringFixed(2)}
			},
			map[string]subcommand{
				"create":  runAppointmentCreate,
				"status":  runAppointmentStatus,
				"options": runAppointmentOptions,
			}),
		resourceCommand("customers", "list|show|delete|create customers",
			func(api *salon.API) *salon.Resource[salon.Customer, salon.CustomerInput] { return api.Customers },
			[]string{"ID", "NAME", "EMAIL", "PHONE"},
			func(row salon.Customer) []string { return []string{id(row.ID), row.Name, row.Email, row.Phone} },
			map[string]subcommand{"create": runCustomerCreate}),
		resourceCommand("services", "list|show|delete services",
			func(api *salon.API) *salon.Resource[salon.Service, salon.ServiceInput] { return api.Services },
			[]string{"ID", "NAME", "PRICE", "MINUTES"},
			func(row salon.Service) []string {
				return []string{id(row.ID), row.Name, row.Price.StringFixed(2), strconv.Itoa(row.DurationMinutes)}
			}, nil),
		resourceCommand("branches", "list|show|delete branches",
			func(api *salon.API) *salon.Resource[salon.Branch, salon.BranchInput] { return api.Branches },
			[]string{"ID", "NAME", "ADDRESS", "ACTIVE"},
			func(row salon.Branch) []string {
				return []string{id(row.ID), row.Name, row.Address, strconv.FormatBool(row.IsActive)}
			}, nil),
		resourceCommand("staff", "list|show|delete staff",
			func(api *salon.API) *salon.Resource[salon.Staff, salon.StaffInput] { return api.Staff },
			[]string{"ID", "NAME", "POSITION", "BRANCH"},
			func(row salon.Staff) []string {
				return []string{id(row.ID), row.Name, row.Position, id(row.BranchID)}
			}, nil),
	}

	table := make(map[string]command, len(commands))
	for _, cmd := range commands {
		table[cmd.name] = cmd
	}
	return table
}

// # Session

func runLogin(ctx context.Context, a *app, args []string) error {
	set := a.flags("login")
	email := set.String("email", "", "account email")
	password := set.String("password", "", "account password")
	if err := a.parse(set, args); err != nil {
		return err
	}

	envelope, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	printMessage(a.stdout, envelope.Message, "Logged in")
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	user, err := a.session.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s <%s>\n", user.Name, user.Email)
	if user.BusinessName != "" {
		fmt.Fprintln(a.stdout, user.BusinessName)
	}
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	set := a.flags("register")
	var input auth.RegisterVendorInput
	set.StringVar(&input.Name, "name", "", "owner name")
	set.StringVar(&input.BusinessName, "business", "", "salon name")
	set.StringVar(&input.Email, "email", "", "account email")
	set.StringVar(&input.Phone, "phone", "", "contact phone")
	set.StringVar(&input.Password, "password", "", "password")
	if err := a.parse(set, args); err != nil {
		return err
	}
	input.PasswordConfirmation = input.Password

	envelope, err := a.session.RegisterVendor(ctx, input)
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Registered")
	return nil
}

func runVerifyEmail(ctx context.Context, a *app, args []string) error {
	set := a.flags("verify-email")
	email := set.String("email", "", "account email")
	code := set.String("code", "", "verification code")
	resend := set.Bool("resend", false, "send a new code instead")
	if err := a.parse(set, args); err != nil {
		return err
	}

	if *resend {
		envelope, err := a.session.ResendVerification(ctx, *email)
		if err != nil {
			return err
		}
		printMessage(a.stdout, envelope.Message, "Verification code sent")
		return nil
	}

	envelope, err := a.session.VerifyEmail(ctx, *email, *code)
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Email verified")
	return nil
}

func runForgotPassword(ctx context.Context, a *app, args []string) error {
	set := a.flags("forgot-password")
	email := set.String("email", "", "account email")
	if err := a.parse(set, args); err != nil {
		return err
	}

	envelope, err := a.session.ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Reset link sent")
	return nil
}

func runResetPassword(ctx context.Context, a *app, args []string) error {
	set := a.flags("reset-password")
	var input auth.ResetPasswordInput
	set.StringVar(&input.Email, "email", "", "account email")
	set.StringVar(&input.Token, "token", "", "reset token from the email")
	set.StringVar(&input.Password, "password", "", "new password")
	if err := a.parse(set, args); err != nil {
		return err
	}
	input.PasswordConfirmation = input.Password

	envelope, err := a.session.ResetPassword(ctx, input)
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Password reset")
	return nil
}

// # Salon

func runDashboard(ctx context.Context, a *app, _ []string) error {
	dashboard, err := a.salon.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Today:      %d appointments\n", dashboard.TodayAppointments)
	fmt.Fprintf(a.stdout, "Upcoming:   %d appointments\n", dashboard.UpcomingAppointments)
	fmt.Fprintf(a.stdout, "Revenue:    %s this month\n", dashboard.RevenueThisMonth.StringFixed(2))
	fmt.Fprintf(a.stdout, "Customers:  %d\n", dashboard.TotalCustomers)
	fmt.Fprintf(a.stdout, "Services:   %d\n", dashboard.TotalServices)
	fmt.Fprintf(a.stdout, "Staff:      %d in %d branches\n", dashboard.TotalStaff, dashboard.TotalBranches)
	return nil
}

// subcommand is an extra verb of a resource command.
type subcommand func(ctx context.Context, a *app, args []string) error

// resourceCommand builds "<name> [list|show ID|delete ID|...]" over a facade.
func resourceCommand[T any, I any](
	name, summary string,
	pick func(api *salon.API) *salon.Resource[T, I],
	header []string,
	row func(T) []string,
	extra map[string]subcommand,
) command {
	return command{
		name:      name,
		summary:   summary,
		protected: true,
		run: func(ctx context.Context, a *app, args []string) error {
			verb := "list"
			if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
				verb, args = args[0], args[1:]
			}
			resource := pick(a.salon)

			switch verb {
			case "list":
				set := a.flags(name + " list")
				page := set.Int("page", 1, "page number")
				perPage := set.Int("per-page", pagination.DefaultPerPage, "items per page")
				search := set.String("search", "", "filter text")
				if err := a.parse(set, args); err != nil {
					return err
				}

				result, err := resource.List(ctx, pagination.Params{Page: *page, PerPage: *perPage, Search: *search})
				if err != nil {
					return err
				}
				printTable(a.stdout, result, header, row)
				return nil

			case "show":
				itemID, err := parseID(args)
				if err != nil {
					return err
				}
				item, err := resource.Get(ctx, itemID)
				if err != nil {
					return err
				}
				return printJSON(a.stdout, item)

			case "delete":
				itemID, err := parseID(args)
				if err != nil {
					return err
				}
				envelope, err := resource.Delete(ctx, itemID)
				if err != nil {
					return err
				}
				printMessage(a.stdout, envelope.Message, "Deleted")
				return nil
			}

			if run, ok := extra[verb]; ok {
				return run(ctx, a, args)
			}
			return usagef("unknown %s subcommand %q", name, verb)
		},
	}
}

func runCustomerCreate(ctx context.Context, a *app, args []string) error {
	set := a.flags("customers create")
	var input salon.CustomerInput
	set.StringVar(&input.Name, "name", "", "customer name")
	set.StringVar(&input.Email, "email", "", "customer email")
	set.StringVar(&input.Phone, "phone", "", "customer phone")
	set.StringVar(&input.Notes, "notes", "", "free-form notes")
	if err := a.parse(set, args); err != nil {
		return err
	}

	envelope, err := a.salon.Customers.Create(ctx, input)
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Created")
	return printJSON(a.stdout, envelope.Data)
}

func runAppointmentCreate(ctx context.Context, a *app, args []string) error {
	set := a.flags("appointments create")
	var input salon.AppointmentInput
	set.Int64Var(&input.CustomerID, "customer", 0, "customer id")
	set.Int64Var(&input.BranchID, "branch", 0, "branch id")
	set.Int64Var(&input.StaffID, "staff", 0, "staff id (optional)")
	services := set.String("services", "", "comma-separated service ids")
	at := set.String("at", "", "start time, RFC 3339")
	set.StringVar(&input.Notes, "notes", "", "free-form notes")
	if err := a.parse(set, args); err != nil {
		return err
	}

	var err error
	if input.ServiceIDs, err = parseIDList(*services); err != nil {
		return err
	}
	if *at != "" {
		if input.StartsAt, err = time.Parse(time.RFC3339, *at); err != nil {
			return usagef("-at must be RFC 3339, e.g. 2026-05-01T14:00:00+07:00")
		}
	}

	envelope, err := a.salon.Appointments.Create(ctx, input)
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Created")
	return printJSON(a.stdout, envelope.Data)
}

// runAppointmentStatus moves a booking to a new status, keeping everything else.
func runAppointmentStatus(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return usagef("usage: salonctl appointments status ID STATUS")
	}
	itemID, err := parseID(args[:1])
	if err != nil {
		return err
	}
	status := salon.AppointmentStatus(args[1])
	if !status.Valid() {
		return usagef("unknown status %q", args[1])
	}

	current, err := a.salon.Appointments.Get(ctx, itemID)
	if err != nil {
		return err
	}

	envelope, err := a.salon.Appointments.Update(ctx, itemID, salon.AppointmentInput{
		CustomerID: current.CustomerID,
		BranchID:   current.BranchID,
		StaffID:    current.StaffID,
		ServiceIDs: current.ServiceIDs,
		StartsAt:   current.StartsAt,
		Status:     status,
		Notes:      current.Notes,
	})
	if err != nil {
		return err
	}
	printMessage(a.stdout, envelope.Message, "Updated")
	return nil
}

func runAppointmentOptions(ctx context.Context, a *app, _ []string) error {
	form, err := a.salon.AppointmentFormData(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.stdout, form)
}

// # Argument Helpers

func id(value int64) string {
	return strconv.FormatInt(value, 10)
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, usagef("an ID is required")
	}
	value, ok := convert.ToInt64(args[0])
	if !ok || value < 1 {
		return 0, usagef("invalid ID %q", args[0])
	}
	return value, nil
}

func parseIDList(raw string) ([]int64, error) {
	parts := query.StringSlice(raw)
	if parts == nil {
		return nil, nil
	}
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		value, err := parseID([]string{part})
		if err != nil {
			return nil, err
		}
		ids = append(ids, value)
	}
	return ids, nil
}
