package service

import "errors"

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrVaultLocked = errors.New("encryption key unavailable")

	ErrNoteNotFound = errors.New("note not found")

	ErrOperationPanicked = errors.New("operation panicked")
	ErrLocalTeardown     = errors.New("local teardown failed")
)
