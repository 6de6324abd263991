// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/validators"
)

// mapAdapterError translates an error raised inside operation code into the
// user-facing message of the resulting AppError.
func mapAdapterError(code app.ErrorCode, err error) string {
	if err == nil {
		return ""
	}

	authOp := code == app.CodeLogin || code == app.CodeSignup

	switch {
	case errors.Is(err, crypto.ErrEncryptor):
		return app.MsgEncryptionFailed

	case errors.Is(err, ErrNotLoggedIn):
		return app.MsgNotLoggedIn

	case errors.Is(err, ErrVaultLocked):
		return app.MsgVaultLocked

	case errors.Is(err, validators.ErrInvalidInput):
		if body := extractBody(err); body != "" {
			return app.MsgBadRequest + ": " + body
		}
		return app.MsgBadRequest

	case errors.Is(err, adapter.ErrServerUnreachable):
		return app.MsgServerUnreachable

	case errors.Is(err, adapter.ErrNoAccessToken),
		errors.Is(err, adapter.ErrTokenExpired):
		return app.MsgSessionExpired

	case errors.Is(err, adapter.ErrUnauthorized):
		if authOp {
			return app.MsgInvalidCredentials
		}
		return app.MsgSessionExpired

	case errors.Is(err, adapter.ErrConflict):
		if code == app.CodeSignup {
			return app.MsgUsernameTaken
		}
		if body := extractBody(err); body != "" {
			return body
		}

	case errors.Is(err, adapter.ErrBadRequest):
		if body := extractBody(err); body != "" {
			return app.MsgBadRequest + ": " + body
		}
		return app.MsgBadRequest

	case errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway):
		return app.MsgServerError

	case errors.Is(err, ErrLocalTeardown):
		return app.MsgLocalTeardownFailed
	}

	return app.MsgUnknown
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return strings.TrimSpace(msg[idx+2:])
	}
	return ""
}

// opError builds the AppError for a failed operation. Codec failures are
// always reported as ENCRYPTOR regardless of the operation.
func opError(code app.ErrorCode, err error, retry app.RetryFunc, display app.Display) *app.AppError {
	if errors.Is(err, crypto.ErrEncryptor) {
		code = app.CodeEncryptor
	}

	opts := []app.Option{app.WithCause(err), app.WithDisplay(display)}
	if retry != nil {
		opts = append(opts, app.WithRetry(retry))
	}
	return app.NewError(code, mapAdapterError(code, err), opts...)
}
