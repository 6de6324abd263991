// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"fmt"
)

// ErrorCode classifies an [AppError] by the operation that produced it.
type ErrorCode string

const (
	CodeNone           ErrorCode = "NONE"
	CodeLogin          ErrorCode = "LOGIN"
	CodeSignup         ErrorCode = "SIGNUP"
	CodeLogout         ErrorCode = "LOGOUT"
	CodePush           ErrorCode = "PUSH"
	CodePull           ErrorCode = "PULL"
	CodeSync           ErrorCode = "SYNC"
	CodeChangePassword ErrorCode = "CHANGE_PASSWORD"
	CodeDeleteAccount  ErrorCode = "DELETE_ACCOUNT"
	CodeEncryptor      ErrorCode = "ENCRYPTOR"
	CodeUnknown        ErrorCode = "UNKNOWN"
)

// RetryFunc re-runs the operation that failed, with its original arguments
// already bound.
type RetryFunc func(ctx context.Context) error

// Display says where the presentation layer should show an error.
type Display struct {
	// Form shows the error on the auth/account form.
	Form bool
	// Sync shows the error on the sync-status indicator.
	Sync bool
}

// AppError is the typed failure stored on the sync session. It is immutable
// once constructed.
type AppError struct {
	code    ErrorCode
	message string
	retry   RetryFunc
	display Display
	cause   error
}

// NoError is the NONE sentinel held by a session with no current error.
var NoError = &AppError{code: CodeNone}

// Option configures an [AppError] at construction time.
type Option func(*AppError)

// WithRetry binds fn as the error's retry action.
func WithRetry(fn RetryFunc) Option {
	return func(e *AppError) { e.retry = fn }
}

// WithDisplay sets where the error should be shown.
func WithDisplay(d Display) Option {
	return func(e *AppError) { e.display = d }
}

// WithCause records the underlying error for logging and errors.Is/As.
func WithCause(err error) Option {
	return func(e *AppError) { e.cause = err }
}

// NewError builds an [AppError].
func NewError(code ErrorCode, message string, opts ...Option) *AppError {
	e := &AppError{code: code, message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap exposes the original cause.
func (e *AppError) Unwrap() error { return e.cause }

func (e *AppError) Code() ErrorCode { return e.code }
func (e *AppError) Message() string { return e.message }
func (e *AppError) Display() Display { return e.display }
func (e *AppError) Cause() error { return e.cause }
func (e *AppError) CanRetry() bool { return e.retry != nil }
func (e *AppError) IsNone() bool { return e == nil || e.code == CodeNone }

// Retry re-runs the bound operation. It returns an error if the AppError has
// no retry action.
func (e *AppError) Retry(ctx context.Context) error {
	if e.retry == nil {
		return fmt.Errorf("%s error is not retryable", e.code)
	}
	return e.retry(ctx)
}
