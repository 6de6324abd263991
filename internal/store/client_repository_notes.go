package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// emptyDelta is stored when a note carries no delta.
const emptyDelta = `{"ops":[]}`

// insertNotesBatch caps the rows per INSERT. Each row binds five variables
// and SQLite limits a statement to 32766 of them.
const insertNotesBatch = 500

type localNoteRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalNoteRepository(db *DB, logger *logger.Logger) NoteStore {
	return &localNoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localNoteRepository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getAllNotes)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.GetAllNotes").
			Msg("failed to execute query for getting all notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)

	for rows.Next() {
		var (
			note  models.Note
			delta string
		)

		scanErr := rows.Scan(
			&note.ID,
			&note.Timestamp,
			&delta,
			&note.Content.Title,
			&note.Content.Body,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localNoteRepository.GetAllNotes").
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		note.Content.Delta = json.RawMessage(delta)

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localNoteRepository.GetAllNotes").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

func (l *localNoteRepository) NewNote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, insertNote,
		note.ID,
		note.Timestamp,
		deltaValue(note.Content.Delta),
		note.Content.Title,
		note.Content.Body,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.NewNote").
			Str("note_id", note.ID).
			Msg("failed to insert note")
		return fmt.Errorf("failed to save note (id=%s): %w", note.ID, err)
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return ErrNoteNotSaved
	}

	return nil
}

func (l *localNoteRepository) EditNote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, updateNote,
		note.Timestamp,
		deltaValue(note.Content.Delta),
		note.Content.Title,
		note.Content.Body,
		note.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.EditNote").
			Str("note_id", note.ID).
			Msg("failed to update note")
		return fmt.Errorf("failed to update note (id=%s): %w", note.ID, err)
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		log.Warn().
			Str("func", "localNoteRepository.EditNote").
			Str("note_id", note.ID).
			Msg("note not found")
		return ErrNoteNotFound
	}

	return nil
}

func (l *localNoteRepository) DeleteNote(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, deleteNote, id); err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.DeleteNote").
			Str("note_id", id).
			Msg("failed to delete note")
		return fmt.Errorf("failed to delete note (id=%s): %w", id, err)
	}

	return nil
}

// SyncLocalNotes replaces the note table with notes inside one transaction.
// Rows go in as multi-row squirrel inserts of at most insertNotesBatch notes.
func (l *localNoteRepository) SyncLocalNotes(ctx context.Context, notes []models.Note) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.SyncLocalNotes").
			Int("count", len(notes)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllNotes); err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.SyncLocalNotes").
			Msg("failed to clear notes")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	for start := 0; start < len(notes); start += insertNotesBatch {
		batch := notes[start:min(start+insertNotesBatch, len(notes))]

		query, args, buildErr := buildInsertNotesQuery(batch)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "localNoteRepository.SyncLocalNotes").
				Msg("failed to build insert query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "localNoteRepository.SyncLocalNotes").
				Int("offset", start).
				Int("count", len(batch)).
				Msg("failed to insert notes")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localNoteRepository.SyncLocalNotes").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Debug().
		Str("func", "localNoteRepository.SyncLocalNotes").
		Int("count", len(notes)).
		Msg("local notes replaced")

	return nil
}

// buildInsertNotesQuery builds one INSERT with a VALUES tuple per note.
func buildInsertNotesQuery(notes []models.Note) (string, []any, error) {
	builder := sq.Insert(notesTable).Columns(noteColumns...)
	for _, n := range notes {
		builder = builder.Values(n.ID, n.Timestamp, deltaValue(n.Content.Delta), n.Content.Title, n.Content.Body)
	}
	return builder.ToSql()
}

func deltaValue(delta json.RawMessage) string {
	if len(delta) == 0 {
		return emptyDelta
	}
	return string(delta)
}
