// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/taibuivan/salonbook/internal/apiclient"
	"github.com/taibuivan/salonbook/internal/auth"
	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/salon"
	"github.com/taibuivan/salonbook/internal/tokenstore"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitLogin       = 2
	exitUsage       = 64
	exitInterrupted = 130
)

// MessageLoginRequired is printed when the session is sent back to login.
const MessageLoginRequired = "Session expired. Run `salonctl login`."

// usageError marks bad command-line input.
type usageError struct{ message string }

func (e *usageError) Error() string { return e.message }

func usagef(format string, args ...any) error {
	return &usageError{message: fmt.Sprintf(format, args...)}
}

// command is one salonctl verb.
type command struct {
	name      string
	summary   string
	protected bool
	run       func(ctx context.Context, a *app, args []string) error
}

// app is one CLI invocation: the client stack plus its output streams.
type app struct {
	session *auth.Session
	salon   *salon.API
	stdout  io.Writer
	stderr  io.Writer

	redirected atomic.Bool
	commands   map[string]command
}

func newApp(apiRoot string, timeout time.Duration, store tokenstore.Store, log *slog.Logger, stdout, stderr io.Writer) *app {
	a := &app{stdout: stdout, stderr: stderr}

	client := apiclient.New(store, apiclient.Options{
		BaseURL: apiRoot,
		Timeout: timeout,
		Logger:  log,
	})
	a.session = auth.NewSession(client, store, auth.NavigatorFunc(a.redirectToLogin), log)
	a.salon = salon.New(client)
	a.commands = commandTable()

	return a
}

// redirectToLogin is the terminal's "login screen": a one-time notice.
func (a *app) redirectToLogin(context.Context) {
	if a.redirected.CompareAndSwap(false, true) {
		fmt.Fprintln(a.stderr, MessageLoginRequired)
	}
}

// run dispatches args and maps the outcome to an exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		return exitUsage
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n\n", args[0])
		a.usage()
		return exitUsage
	}

	if cmd.protected {
		gate := auth.NewGate(a.session, auth.GateOptions{Redirect: true})
		if gate.Check(ctx) != auth.StateAuthenticated {
			if ctx.Err() != nil {
				return exitInterrupted
			}
			if cause := gate.Err(); cause != nil && !apperr.IsUnauthorized(cause) {
				fmt.Fprintln(a.stderr, apperr.UserMessage(cause))
			}
			return exitLogin
		}
	}

	return a.exitCode(ctx, cmd.run(ctx, a, args[1:]))
}

func (a *app) exitCode(ctx context.Context, err error) int {
	var usage *usageError

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	case errors.As(err, &usage):
		if usage.message != "" {
			fmt.Fprintln(a.stderr, usage.message)
		}
		return exitUsage
	case a.redirected.Load():
		return exitLogin
	case ctx.Err() != nil:
		fmt.Fprintln(a.stderr, apperr.MessageCanceled)
		return exitInterrupted
	default:
		fmt.Fprintln(a.stderr, apperr.UserMessage(err))
		return exitFailure
	}
}

func (a *app) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.stderr, "usage: salonctl <command> [flags]")
	fmt.Fprintln(a.stderr)
	for _, name := range names {
		fmt.Fprintf(a.stderr, "  %-16s %s\n", name, a.commands[name].summary)
	}
}

// flags creates a flag set that reports errors instead of exiting.
func (a *app) flags(name string) *flag.FlagSet {
	set := flag.NewFlagSet("salonctl "+name, flag.ContinueOnError)
	set.SetOutput(a.stderr)
	return set
}

// parse reports bad flags as a usage error; the flag set already printed why.
func (a *app) parse(set *flag.FlagSet, args []string) error {
	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{}
	}
	return nil
}
