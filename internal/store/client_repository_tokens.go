package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

type localTokenRepository struct {
	*DB
}

func NewLocalTokenRepository(db *DB) TokenStore {
	return &localTokenRepository{DB: db}
}

func (l *localTokenRepository) GetAccessToken(ctx context.Context, username string) (string, error) {
	var token string
	err := l.DB.QueryRowContext(ctx, getAccessToken, username).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTokenRepository.GetAccessToken").
			Str("username", username).
			Msg("failed to read access token")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return token, nil
}

func (l *localTokenRepository) SetAccessToken(ctx context.Context, username, token string) error {
	if _, err := l.DB.ExecContext(ctx, setAccessToken, username, token); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTokenRepository.SetAccessToken").
			Str("username", username).
			Msg("failed to store access token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (l *localTokenRepository) DeleteAccessToken(ctx context.Context, username string) error {
	if _, err := l.DB.ExecContext(ctx, deleteAccessToken, username); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTokenRepository.DeleteAccessToken").
			Str("username", username).
			Msg("failed to delete access token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
