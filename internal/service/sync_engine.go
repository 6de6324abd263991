// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/validators"
	"github.com/MKhiriev/go-note-sync/models"
	"golang.org/x/sync/errgroup"
)

var (
	displayForm = app.Display{Form: true, Sync: true}
	displaySync = app.Display{Sync: true}
)

// SyncEngine reconciles the local note list with the notes server.
//
// Every public method runs through [Runner.Do]: failures are stored on the
// session as an [*app.AppError] with a retry bound to the same method and
// arguments, and are also returned.
type SyncEngine struct {
	session   *Session
	runner    *Runner
	notes     *NoteService
	tracker   *UnsyncedTracker
	keys      *KeyManager
	codec     crypto.Codec
	adapter   adapter.ServerAdapter
	tokens    store.TokenStore
	prefs     store.PreferenceStore
	validator validators.Validator
	bus       *events.Bus
	logger    *logger.Logger
}

func NewSyncEngine(
	session *Session,
	runner *Runner,
	notes *NoteService,
	tracker *UnsyncedTracker,
	keys *KeyManager,
	codec crypto.Codec,
	serverAdapter adapter.ServerAdapter,
	tokens store.TokenStore,
	prefs store.PreferenceStore,
	bus *events.Bus,
	logger *logger.Logger,
) *SyncEngine {
	return &SyncEngine{
		session:   session,
		runner:    runner,
		notes:     notes,
		tracker:   tracker,
		keys:      keys,
		codec:     codec,
		adapter:   serverAdapter,
		tokens:    tokens,
		prefs:     prefs,
		validator: validators.NewRequestValidator(),
		bus:       bus,
		logger:    logger,
	}
}

// Session returns the session the engine reports to.
func (e *SyncEngine) Session() *Session {
	return e.session
}

// Login authenticates username, submits the local notes and tombstones and
// merges the server's diff into the local list.
func (e *SyncEngine) Login(ctx context.Context, username, password string) error {
	return e.runner.Do(ctx, OpLogin, func(ctx context.Context) error {
		retry := func(ctx context.Context) error { return e.Login(ctx, username, password) }
		fail := func(err error) error { return opError(app.CodeLogin, err, retry, displayForm) }
		log := logger.FromContext(ctx)

		e.session.begin(StateLoggingIn)

		key, err := e.codec.DeriveKey(ctx, username, password)
		if err != nil {
			e.session.abort()
			return fail(err)
		}

		snapshot, err := e.tracker.TakeSnapshot(ctx)
		if err != nil {
			log.Err(err).Msg("failed to persist tracker snapshot")
		}

		encrypted, err := e.codec.EncryptNotes(ctx, models.NonEmptyNotes(e.notes.List()), key)
		if err != nil {
			e.restoreTracker(ctx, snapshot)
			e.session.abort()
			return fail(err)
		}

		req := models.LoginRequest{
			Username:     username,
			Password:     password,
			Notes:        nonNilEncrypted(encrypted),
			DeletedNotes: nonNilDeleted(snapshot.Deleted),
		}
		if err = e.validator.Validate(ctx, req); err != nil {
			e.restoreTracker(ctx, snapshot)
			e.session.abort()
			return fail(err)
		}

		resp, err := e.adapter.Login(ctx, req)
		if err != nil {
			e.restoreTracker(ctx, snapshot)
			e.session.abort()
			return fail(err)
		}

		if err = e.keys.StoreKey(ctx, key); err != nil {
			log.Err(err).Msg("failed to store encryption key")
		}
		if err = e.prefs.SetPreference(ctx, store.PrefUsername, username); err != nil {
			log.Err(err).Msg("failed to persist username")
		}
		e.session.loginSucceeded(username, password)
		e.session.ClearError()
		e.bus.LoggedIn.Publish(events.LoggedIn{Username: username})

		log.Info().
			Str("username", username).
			Int("sent_notes", len(req.Notes)).
			Int("sent_tombstones", len(req.DeletedNotes)).
			Int("diff_added", len(resp.NoteDiff.Added)).
			Int("diff_edited", len(resp.NoteDiff.Edited)).
			Int("diff_deleted", len(resp.NoteDiff.Deleted)).
			Msg("logged in")

		remote, err := decryptDiff(ctx, e.codec, key, e.notes.List(), resp.NoteDiff)
		if err != nil {
			return fail(err)
		}
		e.merge(ctx, remote, true)
		return nil
	})
}

// Signup creates the account for username and uploads the local notes.
// Every local note counts as synced afterwards.
func (e *SyncEngine) Signup(ctx context.Context, username, password string) error {
	return e.runner.Do(ctx, OpSignup, func(ctx context.Context) error {
		retry := func(ctx context.Context) error { return e.Signup(ctx, username, password) }
		log := logger.FromContext(ctx)

		var snapshot models.UnsyncedIDs
		fail := func(err error) error {
			e.restoreTracker(ctx, snapshot)
			if resetErr := e.keys.Reset(ctx); resetErr != nil {
				log.Err(resetErr).Msg("failed to reset key after signup failure")
			}
			e.session.abort()
			return opError(app.CodeSignup, err, retry, displayForm)
		}

		e.session.begin(StateSigningUp)

		key, err := e.codec.DeriveKey(ctx, username, password)
		if err != nil {
			return fail(err)
		}
		if err = e.keys.StoreKey(ctx, key); err != nil {
			return fail(err)
		}

		if snapshot, err = e.tracker.TakeSnapshot(ctx); err != nil {
			log.Err(err).Msg("failed to persist tracker snapshot")
		}

		encrypted, err := e.codec.EncryptNotes(ctx, models.NonEmptyNotes(e.notes.List()), key)
		if err != nil {
			return fail(err)
		}

		req := models.SignupRequest{Username: username, Password: password, Notes: nonNilEncrypted(encrypted)}
		if err = e.validator.Validate(ctx, req); err != nil {
			return fail(err)
		}
		if err = e.adapter.Signup(ctx, req); err != nil {
			return fail(err)
		}

		if err = e.tracker.ForgetNew(ctx, snapshot.New); err != nil {
			log.Err(err).Msg("failed to clear tracker after signup")
		}
		if err = e.prefs.SetPreference(ctx, store.PrefUsername, username); err != nil {
			log.Err(err).Msg("failed to persist username")
		}
		e.session.loginSucceeded(username, password)
		e.session.ClearError()
		e.bus.LoggedIn.Publish(events.LoggedIn{Username: username})

		log.Info().Str("username", username).Int("sent_notes", len(req.Notes)).Msg("signed up")
		return nil
	})
}

// Logout ends the session. The server call and the local teardown run
// concurrently; a failed server call is only logged, so the client is
// always logged out locally afterwards.
func (e *SyncEngine) Logout(ctx context.Context) error {
	return e.runner.Do(ctx, OpLogout, func(ctx context.Context) error {
		log := logger.FromContext(ctx)

		snap := e.session.Snapshot()
		if !snap.LoggedIn {
			return nil
		}

		token, err := e.tokens.GetAccessToken(ctx, snap.Username)
		if err != nil {
			log.Warn().Err(err).Msg("no access token, skipping server logout")
			token = ""
		}

		var serverErr error
		teardownErr := runConcurrently(
			func() error {
				if token == "" {
					return nil
				}
				serverErr = e.adapter.Logout(ctx, snap.Username, token)
				return nil
			},
			func() error { return e.teardown(ctx, snap.Username) },
		)

		if serverErr != nil {
			log.Err(serverErr).Str("username", snap.Username).Msg("server logout failed, logged out locally")
		}
		if teardownErr != nil {
			return opError(app.CodeLogout, fmt.Errorf("%w: %w", ErrLocalTeardown, teardownErr), nil, displaySync)
		}

		log.Info().Str("username", snap.Username).Msg("logged out")
		return nil
	})
}

// Pull fetches the remote note set and merges it into the local list.
func (e *SyncEngine) Pull(ctx context.Context) error {
	return e.runner.Do(ctx, OpPull, func(ctx context.Context) error {
		fail := func(err error) error { return opError(app.CodePull, err, e.Pull, displaySync) }

		username, key, err := e.requireSession(ctx)
		if err != nil {
			return fail(err)
		}

		resp, err := e.adapter.Pull(ctx, username)
		if err != nil {
			return fail(err)
		}

		remote, err := e.codec.DecryptNotes(ctx, resp.Notes, key)
		if err != nil {
			return fail(err)
		}

		merged := e.merge(ctx, remote, true)
		logger.FromContext(ctx).Debug().
			Int("remote_notes", len(remote)).
			Int("merged_notes", len(merged)).
			Msg("pulled notes")
		return nil
	})
}

// Push uploads the local notes and tombstones. It is a no-op while logged
// out or when nothing is tracked as edited or deleted.
//
// The tracker is snapshotted and cleared before the request is sent, so
// changes made while the request is in flight stay tracked. On failure the
// snapshot is merged back.
func (e *SyncEngine) Push(ctx context.Context) error {
	return e.runner.Do(ctx, OpPush, func(ctx context.Context) error {
		log := logger.FromContext(ctx)

		if !e.session.IsLoggedIn() || e.tracker.Size() == 0 {
			return nil
		}

		username, key, err := e.requireSession(ctx)
		if err != nil {
			return opError(app.CodePush, err, e.Push, displaySync)
		}

		snapshot, err := e.tracker.TakeSnapshot(ctx)
		if err != nil {
			log.Err(err).Msg("failed to persist tracker snapshot")
		}
		fail := func(err error) error {
			e.restoreTracker(ctx, snapshot)
			return opError(app.CodePush, err, e.Push, displaySync)
		}

		encrypted, err := e.codec.EncryptNotes(ctx, models.NonEmptyNotes(e.notes.List()), key)
		if err != nil {
			return fail(err)
		}

		req := models.SyncRequest{
			Notes:          nonNilEncrypted(encrypted),
			DeletedNoteIDs: snapshot.DeletedIDs(),
		}
		if err = e.validator.Validate(ctx, req); err != nil {
			return fail(err)
		}

		resp, err := e.adapter.Sync(ctx, username, req)
		if err != nil {
			return fail(err)
		}

		log.Debug().
			Int("sent_notes", len(req.Notes)).
			Int("sent_deleted", len(req.DeletedNoteIDs)).
			Msg("pushed notes")

		var remote []models.Note
		switch {
		case resp.NoteDiff != nil && !resp.NoteDiff.IsEmpty():
			remote, err = decryptDiff(ctx, e.codec, key, e.notes.List(), *resp.NoteDiff)
		case resp.Notes != nil:
			remote, err = e.codec.DecryptNotes(ctx, resp.Notes, key)
		default:
			return nil
		}
		if err != nil {
			// the server already accepted the push; nothing to restore
			return opError(app.CodePush, err, e.Push, displaySync)
		}
		e.merge(ctx, remote, false)
		return nil
	})
}

// ChangePassword re-encrypts every note with a key derived from
// newPassword and replaces the server copy. The new key is stored only
// once the server has accepted it.
func (e *SyncEngine) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return e.runner.Do(ctx, OpChangePassword, func(ctx context.Context) error {
		retry := func(ctx context.Context) error { return e.ChangePassword(ctx, currentPassword, newPassword) }
		fail := func(err error) error { return opError(app.CodeChangePassword, err, retry, displayForm) }

		username, _, err := e.requireSession(ctx)
		if err != nil {
			return fail(err)
		}

		key, err := e.codec.DeriveKey(ctx, username, newPassword)
		if err != nil {
			return fail(err)
		}
		encrypted, err := e.codec.EncryptNotes(ctx, models.NonEmptyNotes(e.notes.List()), key)
		if err != nil {
			return fail(err)
		}

		req := models.ChangePasswordRequest{
			CurrentPassword: currentPassword,
			NewPassword:     newPassword,
			Notes:           nonNilEncrypted(encrypted),
		}
		if err = e.validator.Validate(ctx, req); err != nil {
			return fail(err)
		}
		if err = e.adapter.ChangePassword(ctx, username, req); err != nil {
			return fail(err)
		}

		if err = e.keys.StoreKey(ctx, key); err != nil {
			return fail(err)
		}
		e.session.setPassword(newPassword)

		logger.FromContext(ctx).Info().Str("username", username).Msg("password changed")
		return nil
	})
}

// DeleteAccount removes the account on the server and then tears down the
// local session exactly as Logout does. Local notes are kept.
func (e *SyncEngine) DeleteAccount(ctx context.Context) error {
	return e.runner.Do(ctx, OpDeleteAccount, func(ctx context.Context) error {
		fail := func(err error) error { return opError(app.CodeDeleteAccount, err, e.DeleteAccount, displayForm) }

		username, _, err := e.requireSession(ctx)
		if err != nil {
			return fail(err)
		}
		if err = e.adapter.DeleteAccount(ctx, username); err != nil {
			return fail(err)
		}
		if err = e.teardown(ctx, username); err != nil {
			return opError(app.CodeDeleteAccount, fmt.Errorf("%w: %w", ErrLocalTeardown, err), nil, displaySync)
		}

		logger.FromContext(ctx).Info().Str("username", username).Msg("account deleted")
		return nil
	})
}

// Restore loads the local notes and tracker, and resumes the session of
// the last logged-in user when a username, an access token and a key are
// all still stored.
func (e *SyncEngine) Restore(ctx context.Context) error {
	return e.runner.Do(ctx, OpRestore, func(ctx context.Context) error {
		log := logger.FromContext(ctx)

		if err := e.tracker.Load(ctx); err != nil {
			log.Err(err).Msg("failed to load unsynced note ids")
		}
		if _, err := e.notes.Load(ctx); err != nil {
			return err
		}

		username, err := e.prefs.GetPreference(ctx, store.PrefUsername)
		if errors.Is(err, store.ErrPreferenceNotFound) || username == "" {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err = e.tokens.GetAccessToken(ctx, username); err != nil {
			log.Warn().Err(err).Str("username", username).Msg("no access token, session not restored")
			return nil
		}
		if _, ok, err := e.keys.GetKey(ctx); err != nil || !ok {
			log.Warn().Err(err).Str("username", username).Msg("no encryption key, session not restored")
			return nil
		}

		e.session.restore(username)
		e.bus.LoggedIn.Publish(events.LoggedIn{Username: username})
		log.Info().Str("username", username).Int("unsynced", e.tracker.Size()).Msg("session restored")
		return nil
	})
}

// requireSession returns the username and key of a logged-in session.
func (e *SyncEngine) requireSession(ctx context.Context) (string, crypto.KeyMaterial, error) {
	snap := e.session.Snapshot()
	if !snap.LoggedIn {
		return "", crypto.KeyMaterial{}, ErrNotLoggedIn
	}

	key, ok, err := e.keys.GetKey(ctx)
	if err != nil {
		return "", crypto.KeyMaterial{}, err
	}
	if !ok {
		return "", crypto.KeyMaterial{}, ErrVaultLocked
	}
	return snap.Username, key, nil
}

// merge folds remote into the local list. When allowPush is set and local
// changes raced with the request, one push follows.
func (e *SyncEngine) merge(ctx context.Context, remote []models.Note, allowPush bool) []models.Note {
	merged := e.notes.Merge(ctx, remote)

	if allowPush && e.tracker.Size() > 0 {
		// the push records its own failure on the session
		_ = e.Push(ctx)
	}
	return merged
}

// teardown clears every piece of local session state. All steps run even
// if earlier ones fail.
func (e *SyncEngine) teardown(ctx context.Context, username string) error {
	e.session.clear()

	var errs []error
	if err := e.keys.Reset(ctx); err != nil {
		errs = append(errs, err)
	}
	if username != "" {
		if err := e.tokens.DeleteAccessToken(ctx, username); err != nil {
			errs = append(errs, fmt.Errorf("delete access token: %w", err))
		}
	}
	if err := e.tracker.Clear(ctx, true); err != nil {
		errs = append(errs, err)
	}
	if err := e.prefs.DeletePreference(ctx, store.PrefUsername); err != nil {
		errs = append(errs, fmt.Errorf("delete username: %w", err))
	}
	e.session.ClearError()

	return errors.Join(errs...)
}

func (e *SyncEngine) restoreTracker(ctx context.Context, snapshot models.UnsyncedIDs) {
	if snapshot.IsEmpty() {
		return
	}
	if err := e.tracker.Restore(ctx, snapshot); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to restore unsynced note ids")
	}
}

// runConcurrently runs fns in parallel and waits for all of them. It
// returns the first error.
func runConcurrently(fns ...func() error) error {
	var g errgroup.Group
	for _, fn := range fns {
		g.Go(fn)
	}
	return g.Wait()
}

func nonNilEncrypted(notes []models.EncryptedNote) []models.EncryptedNote {
	if notes == nil {
		return []models.EncryptedNote{}
	}
	return notes
}

func nonNilDeleted(deleted []models.DeletedNote) []models.DeletedNote {
	if deleted == nil {
		return []models.DeletedNote{}
	}
	return deleted
}
