package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

type localPreferenceRepository struct {
	*DB
}

func NewLocalPreferenceRepository(db *DB) PreferenceStore {
	return &localPreferenceRepository{DB: db}
}

func (l *localPreferenceRepository) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := l.DB.QueryRowContext(ctx, getPreference, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrPreferenceNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localPreferenceRepository.GetPreference").
			Str("key", key).
			Msg("failed to read preference")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (l *localPreferenceRepository) SetPreference(ctx context.Context, key, value string) error {
	if _, err := l.DB.ExecContext(ctx, setPreference, key, value); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localPreferenceRepository.SetPreference").
			Str("key", key).
			Msg("failed to store preference")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (l *localPreferenceRepository) DeletePreference(ctx context.Context, key string) error {
	if _, err := l.DB.ExecContext(ctx, deletePreference, key); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localPreferenceRepository.DeletePreference").
			Str("key", key).
			Msg("failed to delete preference")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// unsyncedRepository stores the tracker snapshot as JSON under the
// [PrefUnsyncedNoteIDs] preference.
type unsyncedRepository struct {
	prefs PreferenceStore
}

func NewUnsyncedRepository(prefs PreferenceStore) UnsyncedStore {
	return &unsyncedRepository{prefs: prefs}
}

func (u *unsyncedRepository) LoadUnsynced(ctx context.Context) (models.UnsyncedIDs, error) {
	raw, err := u.prefs.GetPreference(ctx, PrefUnsyncedNoteIDs)
	if errors.Is(err, ErrPreferenceNotFound) {
		return models.UnsyncedIDs{}, nil
	}
	if err != nil {
		return models.UnsyncedIDs{}, err
	}

	var ids models.UnsyncedIDs
	if err = json.Unmarshal([]byte(raw), &ids); err != nil {
		return models.UnsyncedIDs{}, fmt.Errorf("decode unsynced note ids: %w", err)
	}
	return ids, nil
}

func (u *unsyncedRepository) SaveUnsynced(ctx context.Context, ids models.UnsyncedIDs) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode unsynced note ids: %w", err)
	}
	return u.prefs.SetPreference(ctx, PrefUnsyncedNoteIDs, string(raw))
}

func (u *unsyncedRepository) DeleteUnsynced(ctx context.Context) error {
	return u.prefs.DeletePreference(ctx, PrefUnsyncedNoteIDs)
}
