package store

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// NoteStore is the durable local note list.
type NoteStore interface {
	// GetAllNotes returns every stored note, most recent first.
	GetAllNotes(ctx context.Context) ([]models.Note, error)
	// NewNote inserts a note.
	NewNote(ctx context.Context, note models.Note) error
	// EditNote overwrites an existing note. Returns ErrNoteNotFound when
	// the id is unknown.
	EditNote(ctx context.Context, note models.Note) error
	// DeleteNote removes a note. Deleting an unknown id is not an error.
	DeleteNote(ctx context.Context, id string) error
	// SyncLocalNotes replaces the whole note list in one transaction.
	SyncLocalNotes(ctx context.Context, notes []models.Note) error
}

// NoteExporter writes notes out of the database.
type NoteExporter interface {
	// ExportNotes writes each note as a text file in dir.
	ExportNotes(ctx context.Context, dir string, notes []models.Note) ([]string, error)
}

// KeyStore is the dedicated secure store for the encryption key material.
type KeyStore interface {
	PutKey(ctx context.Context, key []byte) error
	// GetKey returns ErrKeyNotFound when no key is stored.
	GetKey(ctx context.Context) ([]byte, error)
	ClearKey(ctx context.Context) error
}

// TokenStore keeps access tokens per username.
type TokenStore interface {
	// GetAccessToken returns ErrTokenNotFound when none is stored.
	GetAccessToken(ctx context.Context, username string) (string, error)
	SetAccessToken(ctx context.Context, username, token string) error
	DeleteAccessToken(ctx context.Context, username string) error
}

// PreferenceStore is a small string key/value store.
type PreferenceStore interface {
	// GetPreference returns ErrPreferenceNotFound for unknown keys.
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
	DeletePreference(ctx context.Context, key string) error
}

// UnsyncedStore persists the mutation tracker snapshot.
type UnsyncedStore interface {
	// LoadUnsynced returns an empty snapshot when nothing is stored.
	LoadUnsynced(ctx context.Context) (models.UnsyncedIDs, error)
	SaveUnsynced(ctx context.Context, ids models.UnsyncedIDs) error
	DeleteUnsynced(ctx context.Context) error
}
