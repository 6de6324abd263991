// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/metrics"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// Operation names used for logging, metrics and the op context value.
const (
	OpLogin          = "login"
	OpSignup         = "signup"
	OpLogout         = "logout"
	OpPull           = "pull"
	OpPush           = "push"
	OpChangePassword = "change_password"
	OpDeleteAccount  = "delete_account"
	OpRestore        = "restore"
)

// Runner wraps every public sync engine operation with in-flight
// accounting and typed error capture.
type Runner struct {
	session *Session
	logger  *logger.Logger
}

func NewRunner(session *Session, logger *logger.Logger) *Runner {
	return &Runner{session: session, logger: logger}
}

// Do runs fn as operation op.
//
// The session's in-flight counter is incremented before fn runs and
// decremented afterwards even if fn panics. An [*app.AppError] returned by
// fn becomes the session's current error as is; any other error or a panic
// is wrapped into an UNKNOWN AppError that keeps the cause. The captured
// AppError is also returned. A successful fn leaves the current error
// untouched.
func (r *Runner) Do(ctx context.Context, op string, fn func(ctx context.Context) error) (err error) {
	ctx = utils.WithOperation(ctx, op)
	log := r.logger.ForOperation(ctx)
	ctx = log.WithContext(ctx)

	r.session.incInFlight()
	metrics.IncInFlight()
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			err = r.capture(log, fmt.Errorf("%w: %v", ErrOperationPanicked, p))
		}

		r.session.decInFlight()
		metrics.DecInFlight()
		metrics.RecordOperation(op, time.Since(start), err == nil)
	}()

	// let a busy indicator observe the in-flight count before fn returns
	runtime.Gosched()

	if fnErr := fn(ctx); fnErr != nil {
		return r.capture(log, fnErr)
	}

	log.Debug().Dur("duration", time.Since(start)).Msg("operation finished")
	return nil
}

func (r *Runner) capture(log *logger.Logger, err error) *app.AppError {
	var appErr *app.AppError
	if !errors.As(err, &appErr) || appErr.IsNone() {
		appErr = app.NewError(app.CodeUnknown, app.MsgUnknown,
			app.WithCause(err),
			app.WithDisplay(app.Display{Sync: true}),
		)
	}

	r.session.setError(appErr)

	log.Err(appErr.Cause()).
		Str("code", string(appErr.Code())).
		Str("message", appErr.Message()).
		Bool("retryable", appErr.CanRetry()).
		Msg("operation failed")
	return appErr
}
