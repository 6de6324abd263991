// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the typed application error surfaced to the
// presentation layer and the user-facing message strings attached to it.
//
// Every sync operation converts its failure into an [*AppError] at its own
// boundary, so the UI never has to deal with raw, un-typed errors.
package app

const (
	// MsgUnknown is used when an operation fails in a way nothing mapped.
	MsgUnknown = "Something went wrong, please try again"

	// MsgServerUnreachable is used when the request never got a response.
	MsgServerUnreachable = "Unable to reach the server"

	// MsgInvalidCredentials is returned on 401 from login or signup.
	MsgInvalidCredentials = "Invalid username or password"

	// MsgSessionExpired is returned on 401 from authenticated endpoints, or
	// when the stored access token has already expired.
	MsgSessionExpired = "Session expired, please log in again"

	// MsgUsernameTaken is returned on 409 from signup.
	MsgUsernameTaken = "Username already exists"

	// MsgBadRequest is returned on 400.
	MsgBadRequest = "Invalid request"

	// MsgServerError is returned on 5xx.
	MsgServerError = "Server error, please try again later"

	// MsgNotLoggedIn is returned by operations that require a session.
	MsgNotLoggedIn = "You are not logged in"

	// MsgVaultLocked is returned when no encryption key is available.
	MsgVaultLocked = "Encryption key unavailable, please log in again"

	// MsgEncryptionFailed is returned for any codec failure.
	MsgEncryptionFailed = "Unable to encrypt or decrypt notes"

	// MsgLocalTeardownFailed is returned when local logout cleanup fails.
	MsgLocalTeardownFailed = "Logged out, but local data could not be fully cleared"
)
