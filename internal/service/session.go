// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-note-sync/internal/app"
)

// State is the sync engine's position in its login/sync lifecycle.
type State string

const (
	StateLoggedOut State = "logged_out"
	StateLoggingIn State = "logging_in"
	StateSigningUp State = "signing_up"
	StateLoggedIn  State = "logged_in"
	StateSyncing   State = "syncing"
)

// SessionSnapshot is a copy of the session taken under its lock.
type SessionSnapshot struct {
	Username string

	// Password is the ephemeral password of the current login. It is empty
	// for a session restored at startup.
	Password string

	HasToken   bool
	LoggedIn   bool
	InFlight   int
	State      State
	CurrentErr *app.AppError
}

// Busy reports whether at least one operation is in flight.
func (s SessionSnapshot) Busy() bool {
	return s.InFlight > 0
}

// Session is the single mutable sync session owned by [ClientServices].
type Session struct {
	mu sync.Mutex

	username string
	password string
	hasToken bool
	loggedIn bool
	pending  State
	inFlight int
	err      *app.AppError
}

// NewSession returns a logged-out session with no error.
func NewSession() *Session {
	return &Session{err: app.NoError}
}

// Snapshot copies the session out.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		Username:   s.username,
		Password:   s.password,
		HasToken:   s.hasToken,
		LoggedIn:   s.loggedIn,
		InFlight:   s.inFlight,
		State:      s.stateLocked(),
		CurrentErr: s.err,
	}
}

func (s *Session) stateLocked() State {
	switch {
	case s.pending != "":
		return s.pending
	case s.loggedIn && s.inFlight > 0:
		return StateSyncing
	case s.loggedIn:
		return StateLoggedIn
	default:
		return StateLoggedOut
	}
}

func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password
}

// CurrentError returns the error of the last failed operation, or
// [app.NoError].
func (s *Session) CurrentError() *app.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) setError(err *app.AppError) {
	if err == nil {
		err = app.NoError
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// ClearError resets the current error to [app.NoError].
func (s *Session) ClearError() {
	s.setError(app.NoError)
}

func (s *Session) begin(state State) {
	s.mu.Lock()
	s.pending = state
	s.mu.Unlock()
}

func (s *Session) abort() {
	s.mu.Lock()
	s.pending = ""
	s.mu.Unlock()
}

func (s *Session) loginSucceeded(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
	s.password = password
	s.hasToken = true
	s.loggedIn = true
	s.pending = ""
}

// restore marks a session recovered from durable storage as logged in. No
// password is known in that case.
func (s *Session) restore(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
	s.password = ""
	s.hasToken = true
	s.loggedIn = true
}

func (s *Session) setPassword(password string) {
	s.mu.Lock()
	s.password = password
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = ""
	s.password = ""
	s.hasToken = false
	s.loggedIn = false
	s.pending = ""
}

func (s *Session) incInFlight() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
}

func (s *Session) decInFlight() {
	s.mu.Lock()
	if s.inFlight > 0 {
		s.inFlight--
	}
	s.mu.Unlock()
}
