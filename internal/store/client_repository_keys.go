package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

type localKeyRepository struct {
	*DB
}

func NewLocalKeyRepository(db *DB) KeyStore {
	return &localKeyRepository{DB: db}
}

func (l *localKeyRepository) PutKey(ctx context.Context, key []byte) error {
	// a nil slice would bind as NULL
	if key == nil {
		key = []byte{}
	}
	if _, err := l.DB.ExecContext(ctx, putSecureKey, key); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localKeyRepository.PutKey").
			Msg("failed to store key")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (l *localKeyRepository) GetKey(ctx context.Context) ([]byte, error) {
	var key []byte
	err := l.DB.QueryRowContext(ctx, getSecureKey).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localKeyRepository.GetKey").
			Msg("failed to read key")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if key == nil {
		key = []byte{}
	}
	return key, nil
}

func (l *localKeyRepository) ClearKey(ctx context.Context) error {
	if _, err := l.DB.ExecContext(ctx, clearSecureKey); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localKeyRepository.ClearKey").
			Msg("failed to clear key")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
