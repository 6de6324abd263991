// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

type noteFixture struct {
	svc     *NoteService
	db      *memNoteStore
	tracker *UnsyncedTracker
	bus     *events.Bus
}

func newNoteFixture(t *testing.T, local ...models.Note) *noteFixture {
	t.Helper()
	f := &noteFixture{db: newMemNoteStore(local...), bus: events.NewBus()}
	f.tracker, _ = newTestTracker()
	f.svc = NewNoteService(f.db, store.NewNoteFileExporter(), f.tracker, f.bus, &seqIDs{}, logger.Nop())

	clock := int64(1_000_000)
	f.svc.now = func() time.Time {
		clock++
		return time.UnixMilli(clock)
	}

	_, err := f.svc.Load(context.Background())
	require.NoError(t, err)
	return f
}

func TestNoteService_Load_EmptyStore(t *testing.T) {
	f := newNoteFixture(t)

	list := f.svc.List()
	require.Len(t, list, 1)
	assert.True(t, list[0].IsEmpty())
	assert.Equal(t, list[0].ID, f.svc.Selected())
	assert.Equal(t, 1, f.db.len(), "the fresh note is written to the store")
	assert.True(t, f.tracker.Snapshot().IsEmpty(), "a synthesized note is not tracked as new")
}

func TestNoteService_Load_SortsAndSelects(t *testing.T) {
	f := newNoteFixture(t, note("old", 1, "old"), note("recent", 3, "recent"), note("mid", 2, "mid"))

	ids := []string{}
	for _, n := range f.svc.List() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"recent", "mid", "old"}, ids)
	assert.Equal(t, "recent", f.svc.Selected())
}

func TestNoteService_Load_StoreFailure(t *testing.T) {
	db := newMemNoteStore()
	db.fail(errors.New("locked"))
	bus := events.NewBus()
	dialogs := bus.Dialogs.Subscribe()
	tracker, _ := newTestTracker()

	svc := NewNoteService(db, store.NewNoteFileExporter(), tracker, bus, &seqIDs{}, logger.Nop())
	_, err := svc.Load(context.Background())
	require.Error(t, err)

	select {
	case d := <-dialogs:
		assert.Equal(t, dialogTitleNoteStore, d.Title)
	default:
		t.Fatal("expected a dialog event")
	}
}

func TestNoteService_Create(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))
	mutations := f.bus.NoteMutations.Subscribe()
	selections := f.bus.SelectionChanges.Subscribe()

	created, err := f.svc.Create(context.Background())
	require.NoError(t, err)

	assert.True(t, created.IsEmpty())
	assert.Equal(t, created.ID, f.svc.List()[0].ID)
	assert.Equal(t, created.ID, f.svc.Selected())
	assert.Equal(t, created.ID, f.tracker.Snapshot().New)
	_, stored := f.db.get(created.ID)
	assert.True(t, stored)

	assert.Equal(t, events.NoteMutation{Kind: events.MutationNew, NoteID: created.ID}, <-mutations)
	assert.Equal(t, events.SelectionChanged{NoteID: created.ID}, <-selections)
}

func TestNoteService_Edit(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"), note("b", 2, "b"))
	mutations := f.bus.NoteMutations.Subscribe()

	edited, err := f.svc.Edit(context.Background(), "a", models.NoteContent{Title: "changed", Body: "text"})
	require.NoError(t, err)

	assert.Equal(t, "a", f.svc.List()[0].ID, "the edited note becomes the most recent")
	assert.Greater(t, edited.Timestamp, int64(2))
	assert.Equal(t, note("a", 1, "a").Content.Delta, edited.Content.Delta, "missing delta keeps the previous one")

	stored, _ := f.db.get("a")
	assert.Equal(t, "changed", stored.Content.Title)
	assert.Equal(t, []string{"a"}, f.tracker.Snapshot().Edited)
	assert.Equal(t, events.NoteMutation{Kind: events.MutationEdit, NoteID: "a"}, <-mutations)
}

func TestNoteService_Edit_NewNoteLeavesNew(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))
	ctx := context.Background()

	created, err := f.svc.Create(ctx)
	require.NoError(t, err)
	_, err = f.svc.Edit(ctx, created.ID, models.NoteContent{Title: "now has content"})
	require.NoError(t, err)

	snap := f.tracker.Snapshot()
	assert.Empty(t, snap.New)
	assert.Equal(t, []string{created.ID}, snap.Edited)
}

func TestNoteService_Edit_UnknownNote(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))
	_, err := f.svc.Edit(context.Background(), "missing", models.NoteContent{Title: "x"})
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.Equal(t, 0, f.tracker.Size())
}

func TestNoteService_Edit_StoreFailureKeepsList(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))
	dialogs := f.bus.Dialogs.Subscribe()
	f.db.fail(errors.New("readonly"))

	_, err := f.svc.Edit(context.Background(), "a", models.NoteContent{Title: "lost"})
	require.Error(t, err)

	got, _ := f.svc.Get("a")
	assert.Equal(t, "a", got.Content.Title)
	assert.Equal(t, 0, f.tracker.Size())
	assert.Len(t, dialogs, 1)
}

// Scenario D: удаление последней заметки.
func TestNoteService_Delete_LastNote(t *testing.T) {
	f := newNoteFixture(t, note("only", 1, "only"))
	selections := f.bus.SelectionChanges.Subscribe()

	require.NoError(t, f.svc.Delete(context.Background(), "only"))

	list := f.svc.List()
	require.Len(t, list, 1)
	fresh := list[0]
	assert.NotEqual(t, "only", fresh.ID)
	assert.True(t, fresh.IsEmpty())

	snap := f.tracker.Snapshot()
	require.Len(t, snap.Deleted, 1)
	assert.Equal(t, "only", snap.Deleted[0].ID)
	assert.Positive(t, snap.Deleted[0].DeletedAt)
	assert.Equal(t, fresh.ID, snap.New)

	assert.Equal(t, fresh.ID, f.svc.Selected())
	assert.Equal(t, events.SelectionChanged{NoteID: fresh.ID}, <-selections)

	_, stillStored := f.db.get("only")
	assert.False(t, stillStored)
}

func TestNoteService_Delete_SelectedNote(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"), note("b", 2, "b"))
	require.NoError(t, f.svc.Select("b"))

	require.NoError(t, f.svc.Delete(context.Background(), "b"))
	assert.Equal(t, "a", f.svc.Selected())
	assert.Len(t, f.svc.List(), 1)
	assert.Empty(t, f.tracker.Snapshot().New)
}

func TestNoteService_Select_Unknown(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))
	assert.ErrorIs(t, f.svc.Select("nope"), ErrNoteNotFound)
	assert.Equal(t, "a", f.svc.Selected())
}

func TestNoteService_Export(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "first"), note("b", 2, "second"))
	dir := t.TempDir()

	paths, err := f.svc.Export(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	for _, p := range paths {
		_, statErr := os.Stat(p)
		assert.NoError(t, statErr)
	}
}

func TestNoteService_Merge_NeverEmpty(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))

	merged := f.svc.Merge(context.Background(), nil)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].IsEmpty())
	assert.Equal(t, merged[0].ID, f.svc.Selected())
	assert.Equal(t, 1, f.db.len())
}

func TestNoteService_Merge_DirtyWins(t *testing.T) {
	f := newNoteFixture(t, note("x", 1, "x"), note("y", 2, "y"))
	ctx := context.Background()

	local, err := f.svc.Edit(ctx, "x", models.NoteContent{Title: "local edit", Delta: []byte(`{"ops":[{"insert":"local edit\n"}]}`)})
	require.NoError(t, err)

	remoteX := note("x", 99_999_999, "remote edit")
	remoteY := note("y", 3, "remote y")
	merged := f.svc.Merge(ctx, []models.Note{remoteX, remoteY})

	got, err := f.svc.Get("x")
	require.NoError(t, err)
	assert.Equal(t, local, got, "a dirty note is kept byte for byte")

	gotY, _ := f.svc.Get("y")
	assert.Equal(t, remoteY, gotY)
	assert.Len(t, merged, 2)
	assert.Equal(t, 1, f.db.synced)
}

func TestNoteService_Merge_SelectionFallsBack(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"), note("b", 2, "b"))
	selections := f.bus.SelectionChanges.Subscribe()
	require.NoError(t, f.svc.Select("a"))
	<-selections

	f.svc.Merge(context.Background(), []models.Note{note("b", 2, "b"), note("c", 5, "c")})

	assert.Equal(t, "c", f.svc.Selected())
	assert.Equal(t, events.SelectionChanged{NoteID: "c"}, <-selections)
}

func TestNoteService_Merge_StoreFailureKeepsMemory(t *testing.T) {
	f := newNoteFixture(t, note("a", 1, "a"))
	dialogs := f.bus.Dialogs.Subscribe()
	f.db.fail(errors.New("disk"))

	merged := f.svc.Merge(context.Background(), []models.Note{note("r", 4, "r")})
	assert.Len(t, merged, 1)
	assert.Equal(t, "r", f.svc.List()[0].ID)
	assert.Len(t, dialogs, 1)
}
