// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

func strPtr(s string) *string { return &s }

func newTestTracker() (*UnsyncedTracker, *memPrefStore) {
	prefs := newMemPrefStore()
	return NewUnsyncedTracker(store.NewUnsyncedRepository(prefs)), prefs
}

// assertTrackerInvariant проверяет: new ∉ edited, new ∉ deleted, edited ∩ deleted = ∅.
func assertTrackerInvariant(t *testing.T, ids models.UnsyncedIDs) {
	t.Helper()
	deleted := make(map[string]struct{}, len(ids.Deleted))
	for _, d := range ids.Deleted {
		deleted[d.ID] = struct{}{}
	}
	for _, e := range ids.Edited {
		_, both := deleted[e]
		assert.False(t, both, "id %s is both edited and deleted", e)
		if ids.New != "" {
			assert.NotEqual(t, ids.New, e, "new id is also edited")
		}
	}
	if ids.New != "" {
		_, del := deleted[ids.New]
		assert.False(t, del, "new id is also deleted")
	}
}

func TestUnsyncedTracker_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("new overwrites previous new", func(t *testing.T) {
		tr, _ := newTestTracker()
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("a")}))
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("b")}))
		assert.Equal(t, "b", tr.Snapshot().New)
		assert.Equal(t, 0, tr.Size())
	})

	t.Run("deletion evicts pending edit", func(t *testing.T) {
		tr, _ := newTestTracker()
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Edited: []string{"x", "y"}}))
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Deleted: []models.DeletedNote{{ID: "x", DeletedAt: 5}}}))

		snap := tr.Snapshot()
		assert.Equal(t, []string{"y"}, snap.Edited)
		assert.Equal(t, []models.DeletedNote{{ID: "x", DeletedAt: 5}}, snap.Deleted)
		assert.Equal(t, 2, tr.Size())
	})

	t.Run("edit of deleted id is ignored", func(t *testing.T) {
		tr, _ := newTestTracker()
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Deleted: []models.DeletedNote{{ID: "x", DeletedAt: 5}}}))
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Edited: []string{"x"}}))
		assert.Empty(t, tr.Snapshot().Edited)
	})

	t.Run("edited new note is no longer new", func(t *testing.T) {
		tr, _ := newTestTracker()
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("n")}))
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Edited: []string{"n"}}))

		snap := tr.Snapshot()
		assert.Empty(t, snap.New)
		assert.Equal(t, []string{"n"}, snap.Edited)
	})

	t.Run("deleted new note is no longer new", func(t *testing.T) {
		tr, _ := newTestTracker()
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("n")}))
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Deleted: []models.DeletedNote{{ID: "n", DeletedAt: 1}}}))
		assert.Empty(t, tr.Snapshot().New)
	})

	t.Run("duplicate edits are deduplicated", func(t *testing.T) {
		tr, _ := newTestTracker()
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Edited: []string{"a", "a"}}))
		require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Edited: []string{"a"}}))
		assert.Equal(t, 1, tr.Size())
	})
}

func TestUnsyncedTracker_InvariantUnderRandomSets(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker()
	rnd := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c", "d", "e"}

	for i := 0; i < 500; i++ {
		var u UnsyncedUpdate
		if rnd.Intn(3) == 0 {
			u.New = strPtr(ids[rnd.Intn(len(ids))])
		}
		for j := rnd.Intn(3); j > 0; j-- {
			u.Edited = append(u.Edited, ids[rnd.Intn(len(ids))])
		}
		for j := rnd.Intn(2); j > 0; j-- {
			u.Deleted = append(u.Deleted, models.DeletedNote{ID: ids[rnd.Intn(len(ids))], DeletedAt: int64(i + 1)})
		}
		require.NoError(t, tr.Set(ctx, u))
		assertTrackerInvariant(t, tr.Snapshot())
	}
}

func TestUnsyncedTracker_Clear(t *testing.T) {
	ctx := context.Background()
	tr, prefs := newTestTracker()

	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{
		New:     strPtr("n"),
		Edited:  []string{"e"},
		Deleted: []models.DeletedNote{{ID: "d", DeletedAt: 1}},
	}))

	require.NoError(t, tr.Clear(ctx, false))
	snap := tr.Snapshot()
	assert.Equal(t, "n", snap.New)
	assert.Empty(t, snap.Edited)
	assert.Empty(t, snap.Deleted)
	assert.True(t, prefs.has(store.PrefUnsyncedNoteIDs), "a tracked new id keeps the snapshot persisted")

	require.NoError(t, tr.Clear(ctx, true))
	assert.True(t, tr.Snapshot().IsEmpty())
	assert.False(t, prefs.has(store.PrefUnsyncedNoteIDs), "an empty tracker removes its snapshot")
}

func TestUnsyncedTracker_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	prefs := newMemPrefStore()

	tr := NewUnsyncedTracker(store.NewUnsyncedRepository(prefs))
	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{
		New:     strPtr("n"),
		Edited:  []string{"e1", "e2"},
		Deleted: []models.DeletedNote{{ID: "d", DeletedAt: 7}},
	}))

	reloaded := NewUnsyncedTracker(store.NewUnsyncedRepository(prefs))
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, tr.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, 3, reloaded.Size())
}

func TestUnsyncedTracker_TakeSnapshotAndRestore(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker()

	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{
		New:     strPtr("n"),
		Edited:  []string{"a"},
		Deleted: []models.DeletedNote{{ID: "d", DeletedAt: 1}},
	}))

	snap, err := tr.TakeSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, snap.Edited)
	assert.Equal(t, 0, tr.Size())
	assert.Equal(t, "n", tr.Snapshot().New)

	// правка во время запроса
	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{Edited: []string{"b"}}))

	require.NoError(t, tr.Restore(ctx, snap))
	after := tr.Snapshot()
	assert.ElementsMatch(t, []string{"a", "b"}, after.Edited)
	assert.Equal(t, []models.DeletedNote{{ID: "d", DeletedAt: 1}}, after.Deleted)
	assert.Equal(t, "n", after.New)
}

func TestUnsyncedTracker_RestoreKeepsNewerNewID(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker()

	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("old")}))
	snap, err := tr.TakeSnapshot(ctx)
	require.NoError(t, err)

	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("newer")}))
	require.NoError(t, tr.Restore(ctx, snap))
	assert.Equal(t, "newer", tr.Snapshot().New)
}

func TestUnsyncedTracker_ForgetNew(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker()

	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{New: strPtr("n")}))
	require.NoError(t, tr.ForgetNew(ctx, "other"))
	assert.Equal(t, "n", tr.Snapshot().New)

	require.NoError(t, tr.ForgetNew(ctx, "n"))
	assert.Empty(t, tr.Snapshot().New)
}

func TestUnsyncedTracker_DirtyIDs(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker()
	require.NoError(t, tr.Set(ctx, UnsyncedUpdate{
		New:     strPtr("n"),
		Edited:  []string{"e"},
		Deleted: []models.DeletedNote{{ID: "d", DeletedAt: 1}},
	}))

	assert.Equal(t, map[string]struct{}{"n": {}, "e": {}, "d": {}}, tr.DirtyIDs())
}

func TestUnsyncedTracker_StoreErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	unsynced := mock.NewMockUnsyncedStore(ctrl)
	tr := NewUnsyncedTracker(unsynced)

	storeErr := errors.New("disk full")
	unsynced.EXPECT().SaveUnsynced(gomock.Any(), gomock.Any()).Return(storeErr)

	err := tr.Set(ctx, UnsyncedUpdate{Edited: []string{"a"}})
	require.ErrorIs(t, err, storeErr)
	// состояние в памяти всё равно обновлено
	assert.Equal(t, 1, tr.Size())

	unsynced.EXPECT().LoadUnsynced(gomock.Any()).Return(models.UnsyncedIDs{}, storeErr)
	assert.ErrorIs(t, tr.Load(ctx), storeErr)
}
