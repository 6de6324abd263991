package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// Notes is the SQLite-backed local note list.
	Notes NoteStore
	// Exporter writes notes to plain-text files.
	Exporter NoteExporter
	// Keys is the dedicated store for the encryption key material.
	Keys KeyStore
	// Tokens holds access tokens per username.
	Tokens TokenStore
	// Preferences is the key/value preference store.
	Preferences PreferenceStore
	// Unsynced persists the mutation tracker snapshot.
	Unsynced UnsyncedStore

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories sharing that connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewClientStoragesFromDB(db, logger), nil
}

// NewClientStoragesFromDB wires every repository to an already migrated
// connection.
func NewClientStoragesFromDB(db *DB, logger *logger.Logger) *ClientStorages {
	prefs := NewLocalPreferenceRepository(db)

	return &ClientStorages{
		Notes:       NewLocalNoteRepository(db, logger),
		Exporter:    NewNoteFileExporter(),
		Keys:        NewLocalKeyRepository(db),
		Tokens:      NewLocalTokenRepository(db),
		Preferences: prefs,
		Unsynced:    NewUnsyncedRepository(prefs),
		db:          db,
	}
}

// Close releases the underlying database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
