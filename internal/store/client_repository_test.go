package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return NewDB(db, logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

var noteRowColumns = []string{"id", "timestamp", "delta", "title", "body"}

func testNote(id string, ts int64, title string) models.Note {
	return models.Note{
		ID:        id,
		Timestamp: ts,
		Content: models.NoteContent{
			Delta: json.RawMessage(`{"ops":[{"insert":"` + title + `\n"}]}`),
			Title: title,
		},
	}
}

// ── notes ─────────────────────────────────────────────────────────────────────

func TestLocalNoteRepository_GetAllNotes(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	rows := sqlmock.NewRows(noteRowColumns).
		AddRow("b", int64(20), `{"ops":[]}`, "second", "body b").
		AddRow("a", int64(10), `{"ops":[]}`, "first", "")
	mock.ExpectQuery(regexp.QuoteMeta(getAllNotes)).WillReturnRows(rows)

	notes, err := repo.GetAllNotes(testContext())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "b", notes[0].ID)
	assert.Equal(t, int64(20), notes[0].Timestamp)
	assert.Equal(t, "second", notes[0].Content.Title)
	assert.Equal(t, "body b", notes[0].Content.Body)
	assert.JSONEq(t, `{"ops":[]}`, string(notes[1].Content.Delta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_GetAllNotes_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getAllNotes)).WillReturnRows(sqlmock.NewRows(noteRowColumns))

	notes, err := repo.GetAllNotes(testContext())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestLocalNoteRepository_GetAllNotes_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getAllNotes)).WillReturnError(assert.AnError)

	_, err := repo.GetAllNotes(testContext())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLocalNoteRepository_GetAllNotes_ScanError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	rows := sqlmock.NewRows(noteRowColumns).AddRow("a", "not-a-number", "{}", "t", "b")
	mock.ExpectQuery(regexp.QuoteMeta(getAllNotes)).WillReturnRows(rows)

	_, err := repo.GetAllNotes(testContext())
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestLocalNoteRepository_NewNote(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	note := models.Note{ID: "n1", Timestamp: 5, Content: models.NoteContent{Title: "t", Body: "b"}}
	mock.ExpectExec(regexp.QuoteMeta(insertNote)).
		WithArgs("n1", int64(5), emptyDelta, "t", "b").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.NewNote(testContext(), note))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_NewNote_NotSaved(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(insertNote)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.NewNote(testContext(), testNote("n1", 1, "x"))
	assert.ErrorIs(t, err, ErrNoteNotSaved)
}

func TestLocalNoteRepository_EditNote(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	note := testNote("n1", 9, "edited")
	mock.ExpectExec(regexp.QuoteMeta(updateNote)).
		WithArgs(int64(9), string(note.Content.Delta), "edited", "", "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.EditNote(testContext(), note))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_EditNote_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(updateNote)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.EditNote(testContext(), testNote("ghost", 1, "x"))
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestLocalNoteRepository_DeleteNote(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteNote)).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteNote(testContext(), "n1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildInsertNotesQuery(t *testing.T) {
	query, args, err := buildInsertNotesQuery([]models.Note{
		testNote("a", 1, "A"),
		{ID: "b", Timestamp: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO notes (id,timestamp,delta,title,body) VALUES (?,?,?,?,?),(?,?,?,?,?)", query)
	require.Len(t, args, 10)
	assert.Equal(t, "a", args[0])
	assert.Equal(t, emptyDelta, args[7])
}

func TestLocalNoteRepository_SyncLocalNotes(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	notes := []models.Note{testNote("a", 2, "A"), testNote("b", 1, "B")}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteAllNotes)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).
		WithArgs(
			"a", int64(2), string(notes[0].Content.Delta), "A", "",
			"b", int64(1), string(notes[1].Content.Delta), "B", "",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.SyncLocalNotes(testContext(), notes))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_SyncLocalNotes_Batches(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	notes := make([]models.Note, 2*insertNotesBatch+1)
	for i := range notes {
		notes[i] = testNote(fmt.Sprintf("n%05d", i), int64(i), "t")
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteAllNotes)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).WillReturnResult(sqlmock.NewResult(0, insertNotesBatch))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).WillReturnResult(sqlmock.NewResult(0, insertNotesBatch))
	// последний неполный пакет
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes (id,timestamp,delta,title,body) VALUES (?,?,?,?,?)")).
		WithArgs("n01000", int64(1000), string(notes[1000].Content.Delta), "t", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SyncLocalNotes(testContext(), notes))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_SyncLocalNotes_EmptyOnlyClears(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteAllNotes)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SyncLocalNotes(testContext(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_SyncLocalNotes_InsertFailsRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteAllNotes)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SyncLocalNotes(testContext(), []models.Note{testNote("a", 1, "A")})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_SyncLocalNotes_BeginFails(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin().WillReturnError(assert.AnError)

	err := repo.SyncLocalNotes(testContext(), nil)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

// ── keys / tokens / preferences ───────────────────────────────────────────────

func TestLocalKeyRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalKeyRepository(newDBFromSQL(db))
	ctx := testContext()

	master := []byte{0x9f, 0x01, 0x7a, 0x3c}
	mock.ExpectExec(regexp.QuoteMeta(putSecureKey)).WithArgs(master).WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.PutKey(ctx, master))

	mock.ExpectExec(regexp.QuoteMeta(putSecureKey)).WithArgs([]byte{}).WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.PutKey(ctx, nil))

	mock.ExpectQuery(regexp.QuoteMeta(getSecureKey)).
		WillReturnRows(sqlmock.NewRows([]string{"key_material"}).AddRow(master))
	key, err := repo.GetKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, master, key)

	mock.ExpectQuery(regexp.QuoteMeta(getSecureKey)).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetKey(ctx)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	mock.ExpectExec(regexp.QuoteMeta(clearSecureKey)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ClearKey(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalTokenRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalTokenRepository(newDBFromSQL(db))
	ctx := testContext()

	mock.ExpectExec(regexp.QuoteMeta(setAccessToken)).WithArgs("alice", "tok").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.SetAccessToken(ctx, "alice", "tok"))

	mock.ExpectQuery(regexp.QuoteMeta(getAccessToken)).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("tok"))
	token, err := repo.GetAccessToken(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	mock.ExpectQuery(regexp.QuoteMeta(getAccessToken)).WithArgs("bob").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetAccessToken(ctx, "bob")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	mock.ExpectQuery(regexp.QuoteMeta(getAccessToken)).WithArgs("carol").WillReturnError(assert.AnError)
	_, err = repo.GetAccessToken(ctx, "carol")
	assert.ErrorIs(t, err, ErrExecutingQuery)

	mock.ExpectExec(regexp.QuoteMeta(deleteAccessToken)).WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteAccessToken(ctx, "alice"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalPreferenceRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalPreferenceRepository(newDBFromSQL(db))
	ctx := testContext()

	mock.ExpectExec(regexp.QuoteMeta(setPreference)).WithArgs(PrefTheme, "dark").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.SetPreference(ctx, PrefTheme, "dark"))

	mock.ExpectQuery(regexp.QuoteMeta(getPreference)).WithArgs(PrefTheme).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))
	v, err := repo.GetPreference(ctx, PrefTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	mock.ExpectQuery(regexp.QuoteMeta(getPreference)).WithArgs(PrefMenuWidth).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetPreference(ctx, PrefMenuWidth)
	assert.ErrorIs(t, err, ErrPreferenceNotFound)

	mock.ExpectExec(regexp.QuoteMeta(deletePreference)).WithArgs(PrefTheme).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeletePreference(ctx, PrefTheme))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── unsynced snapshot ─────────────────────────────────────────────────────────

func TestUnsyncedRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUnsyncedRepository(NewLocalPreferenceRepository(newDBFromSQL(db)))
	ctx := testContext()

	mock.ExpectQuery(regexp.QuoteMeta(getPreference)).WithArgs(PrefUnsyncedNoteIDs).WillReturnError(sql.ErrNoRows)
	ids, err := repo.LoadUnsynced(ctx)
	require.NoError(t, err)
	assert.True(t, ids.IsEmpty())

	snapshot := models.UnsyncedIDs{
		New:     "n",
		Edited:  []string{"e"},
		Deleted: []models.DeletedNote{{ID: "d", DeletedAt: 42}},
	}
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(setPreference)).
		WithArgs(PrefUnsyncedNoteIDs, string(raw)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.SaveUnsynced(ctx, snapshot))

	mock.ExpectQuery(regexp.QuoteMeta(getPreference)).WithArgs(PrefUnsyncedNoteIDs).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(string(raw)))
	loaded, err := repo.LoadUnsynced(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)

	mock.ExpectQuery(regexp.QuoteMeta(getPreference)).WithArgs(PrefUnsyncedNoteIDs).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("{broken"))
	_, err = repo.LoadUnsynced(ctx)
	assert.Error(t, err)

	mock.ExpectExec(regexp.QuoteMeta(deletePreference)).WithArgs(PrefUnsyncedNoteIDs).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteUnsynced(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnsyncedRepository_PropagatesStoreError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUnsyncedRepository(NewLocalPreferenceRepository(newDBFromSQL(db)))

	mock.ExpectQuery(regexp.QuoteMeta(getPreference)).WillReturnError(assert.AnError)

	_, err := repo.LoadUnsynced(testContext())
	assert.True(t, errors.Is(err, ErrExecutingQuery))
}

func TestIsUserPreferenceKey(t *testing.T) {
	assert.True(t, IsUserPreferenceKey(PrefTheme))
	assert.True(t, IsUserPreferenceKey(PrefMenuWidth))
	assert.False(t, IsUserPreferenceKey(PrefUsername))
	assert.False(t, IsUserPreferenceKey(PrefUnsyncedNoteIDs))
}
