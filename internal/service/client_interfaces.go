package service

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

// ClientSyncService defines the client-side contract for keeping the local
// note list in sync with the notes server. Every method records its failure
// on the session as an *app.AppError and returns it.
type ClientSyncService interface {
	// Login derives the key from password, submits the non-empty local notes
	// and the pending tombstones, and merges the server's note diff.
	Login(ctx context.Context, username, password string) error

	// Signup creates the account and uploads the non-empty local notes. All
	// local notes count as synced afterwards.
	Signup(ctx context.Context, username, password string) error

	// Logout invalidates the session on the server and, regardless of the
	// outcome, clears the local session, key, token and tracker.
	Logout(ctx context.Context) error

	// Pull fetches the remote notes and merges them into the local list.
	Pull(ctx context.Context) error

	// Push uploads the local notes and tombstones. It is a no-op while
	// logged out or when nothing is tracked.
	Push(ctx context.Context) error

	// ChangePassword re-encrypts all notes with a key derived from
	// newPassword and replaces the server copy.
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// DeleteAccount removes the account on the server and tears down the
	// local session.
	DeleteAccount(ctx context.Context) error

	// Restore loads the local notes and tracker and resumes the last session
	// when its token and key are still stored.
	Restore(ctx context.Context) error

	// Session returns the session the service reports to.
	Session() *Session
}

// ClientNoteService defines the client-side contract for editing the local
// note list. The list is never empty once loaded.
type ClientNoteService interface {
	Load(ctx context.Context) ([]models.Note, error)
	List() []models.Note
	Get(id string) (models.Note, error)
	Selected() string
	Select(id string) error
	Create(ctx context.Context) (models.Note, error)
	Edit(ctx context.Context, id string, content models.NoteContent) (models.Note, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, dir string) ([]string, error)
}

// ClientPreferenceService defines the client-side contract for the
// user-editable preferences (theme, menu width, last seen update version).
type ClientPreferenceService interface {
	// Get returns the stored value of key, or ok=false when unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set validates and stores a preference.
	Set(ctx context.Context, key, value string) error

	// Delete removes a preference. Unknown keys are rejected.
	Delete(ctx context.Context, key string) error

	// List returns every preference that is currently set.
	List(ctx context.Context) ([]models.Preference, error)
}
