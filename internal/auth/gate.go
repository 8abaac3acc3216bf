// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
)

// # Gate State

// State is the resolution of a [Gate].
type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateUnauthenticated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "checking"
	}
}

// GateOptions configures a [Gate].
type GateOptions struct {
	// Redirect sends unauthenticated sessions to the login screen.
	Redirect bool
}

/*
Gate guards one mount of a protected screen.

# Lifecycle

	CHECKING -> AUTHENTICATED | UNAUTHENTICATED

The check runs at most once per Gate; the resolution is terminal. Screens that
want to re-validate on focus call [Gate.Recheck], which resolves a fresh Gate.

# Failure Semantics

Fail-closed: any failure of the profile probe, including a panic inside it,
clears the token and resolves UNAUTHENTICATED. The only exception is the
caller cancelling ctx (the screen went away): the gate then resolves
UNAUTHENTICATED without touching the token or navigating.
*/
type Gate struct {
	session *Session
	options GateOptions

	once    sync.Once
	mu      sync.RWMutex
	state   State
	profile *User
	err     error
}

// NewGate creates a gate in the CHECKING state.
func NewGate(session *Session, options GateOptions) *Gate {
	return &Gate{session: session, options: options}
}

// Check resolves the gate on first call and returns the resolution.
func (gate *Gate) Check(ctx context.Context) State {
	gate.once.Do(func() { gate.resolve(ctx) })
	return gate.State()
}

// Recheck resolves a fresh gate with the same options (focus re-validation).
func (gate *Gate) Recheck(ctx context.Context) *Gate {
	fresh := NewGate(gate.session, gate.options)
	fresh.Check(ctx)
	return fresh
}

// State returns the current state.
func (gate *Gate) State() State {
	gate.mu.RLock()
	defer gate.mu.RUnlock()
	return gate.state
}

// Checking reports whether the gate has not resolved yet.
func (gate *Gate) Checking() bool {
	return gate.State() == StateChecking
}

// Profile returns the account loaded by a successful probe.
func (gate *Gate) Profile() *User {
	gate.mu.RLock()
	defer gate.mu.RUnlock()
	return gate.profile
}

// Err returns the probe failure that resolved the gate, if any.
func (gate *Gate) Err() error {
	gate.mu.RLock()
	defer gate.mu.RUnlock()
	return gate.err
}

// # Resolution

func (gate *Gate) resolve(ctx context.Context) {
	session := gate.session
	logger := session.logger

	token, ok := session.store.Read(ctx)
	if !ok {
		logger.DebugContext(ctx, "auth_gate_no_token")
		gate.reject(ctx, nil, false)
		return
	}

	if TokenExpired(token, session.now()) {
		logger.InfoContext(ctx, "auth_gate_token_expired")
		gate.reject(ctx, apperr.Unauthorized("Session expired"), true)
		return
	}

	profile, err := gate.probe(ctx)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Kind == apperr.KindCanceled {
			gate.finish(StateUnauthenticated, nil, err)
			return
		}
		logger.WarnContext(ctx, "auth_gate_probe_failed", slog.Any("error", err))
		gate.reject(ctx, err, true)
		return
	}

	gate.finish(StateAuthenticated, profile, nil)
}

// probe runs the profile request, converting a panic into an error.
func (gate *Gate) probe(ctx context.Context) (profile *User, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			profile, err = nil, fmt.Errorf("auth: profile probe panicked: %v", recovered)
		}
	}()
	return gate.session.profile(ctx, true)
}

func (gate *Gate) reject(ctx context.Context, cause error, clear bool) {
	if clear {
		gate.session.store.Clear(context.WithoutCancel(ctx))
	}
	gate.finish(StateUnauthenticated, nil, cause)

	if gate.options.Redirect && gate.session.navigator != nil {
		gate.session.navigator.RedirectToLogin(ctx)
	}
}

func (gate *Gate) finish(state State, profile *User, err error) {
	gate.mu.Lock()
	defer gate.mu.Unlock()
	gate.state, gate.profile, gate.err = state, profile, err
}
