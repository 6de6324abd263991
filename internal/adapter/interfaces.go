// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the sync engine and
// the notes server.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from HTTP. Access tokens are never held by the adapter: every
// authenticated call reads the token for the username from a
// [store.TokenStore], and any token the server hands back (on signup, login,
// or rotated on a later response) is written straight back to it.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the notes server.
type ServerAdapter interface {
	// Signup creates the account and uploads the initial encrypted notes.
	// The returned access token is stored for req.Username.
	Signup(ctx context.Context, req models.SignupRequest) error

	// Login authenticates and submits the local notes and tombstones. The
	// returned access token is stored for req.Username and the server's
	// note diff is returned.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Logout invalidates token on the server. The token is passed in
	// explicitly because local teardown may delete it from the token store
	// while the request is in flight.
	Logout(ctx context.Context, username, token string) error

	// Pull fetches the full remote note set.
	Pull(ctx context.Context, username string) (models.PullResponse, error)

	// Sync uploads the local notes and deleted ids. The server answers with
	// either a diff or the full remote set.
	Sync(ctx context.Context, username string, req models.SyncRequest) (models.SyncResponse, error)

	// ChangePassword replaces the account password and the stored notes,
	// which must already be encrypted with the new key.
	ChangePassword(ctx context.Context, username string, req models.ChangePasswordRequest) error

	// DeleteAccount removes the account and all its notes from the server.
	DeleteAccount(ctx context.Context, username string) error
}
