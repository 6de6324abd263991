// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-note-sync/internal/metrics"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// UnsyncedUpdate is the argument of [UnsyncedTracker.Set]. A nil New leaves
// the tracked new id unchanged.
type UnsyncedUpdate struct {
	New     *string
	Edited  []string
	Deleted []models.DeletedNote
}

// UnsyncedTracker records which notes have local changes not yet confirmed
// by the server.
//
// The tracked new id is never a member of the edited or deleted sets, and
// the edited and deleted sets are disjoint. Every change is persisted as a
// whole snapshot; an empty tracker removes its snapshot from storage.
type UnsyncedTracker struct {
	store store.UnsyncedStore

	mu      sync.Mutex
	newID   string
	edited  []string
	deleted []models.DeletedNote
	version uint64

	// persistMu orders snapshot writes so a stale snapshot never overwrites
	// a newer one.
	persistMu sync.Mutex
	persisted uint64
}

func NewUnsyncedTracker(unsyncedStore store.UnsyncedStore) *UnsyncedTracker {
	return &UnsyncedTracker{store: unsyncedStore}
}

// Load replaces the in-memory state with the persisted snapshot.
func (t *UnsyncedTracker) Load(ctx context.Context) error {
	ids, err := t.store.LoadUnsynced(ctx)
	if err != nil {
		return fmt.Errorf("load unsynced note ids: %w", err)
	}

	t.mu.Lock()
	t.newID = ""
	t.edited = nil
	t.deleted = nil
	t.applyLocked(UnsyncedUpdate{New: &ids.New, Edited: ids.Edited, Deleted: ids.Deleted})
	t.version++
	size := len(t.edited) + len(t.deleted)
	t.mu.Unlock()

	metrics.SetUnsyncedNotes(size)
	return nil
}

// Set records local mutations.
//
// New, when given, replaces the tracked new id. Edited ids are added to the
// edited set unless already deleted. Deleted notes are added to the deleted
// set and evict their id from the edited set. Finally the new id is cleared
// if it ended up edited or deleted.
func (t *UnsyncedTracker) Set(ctx context.Context, update UnsyncedUpdate) error {
	t.mu.Lock()
	t.applyLocked(update)
	return t.commitLocked(ctx)
}

// Restore merges a snapshot taken before a failed request back into the
// tracker. Edits and deletions are added as by Set; the snapshot's new id
// is only restored if no other note has become new meanwhile.
func (t *UnsyncedTracker) Restore(ctx context.Context, snapshot models.UnsyncedIDs) error {
	t.mu.Lock()
	update := UnsyncedUpdate{Edited: snapshot.Edited, Deleted: snapshot.Deleted}
	if t.newID == "" && snapshot.New != "" {
		update.New = &snapshot.New
	}
	t.applyLocked(update)
	return t.commitLocked(ctx)
}

// Clear always empties the edited and deleted sets, and the new id only
// when alsoClearNew is set.
func (t *UnsyncedTracker) Clear(ctx context.Context, alsoClearNew bool) error {
	t.mu.Lock()
	t.edited = nil
	t.deleted = nil
	if alsoClearNew {
		t.newID = ""
	}
	return t.commitLocked(ctx)
}

// TakeSnapshot returns the current state and clears the edited and deleted
// sets in one step.
func (t *UnsyncedTracker) TakeSnapshot(ctx context.Context) (models.UnsyncedIDs, error) {
	t.mu.Lock()
	snapshot := t.snapshotLocked()
	t.edited = nil
	t.deleted = nil
	return snapshot, t.commitLocked(ctx)
}

// ForgetNew clears the tracked new id if it is still id. A different id
// tracked meanwhile is kept.
func (t *UnsyncedTracker) ForgetNew(ctx context.Context, id string) error {
	t.mu.Lock()
	if id == "" || t.newID != id {
		t.mu.Unlock()
		return nil
	}
	t.newID = ""
	return t.commitLocked(ctx)
}

// Size is the number of edited plus deleted ids. The new id is not counted.
func (t *UnsyncedTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.edited) + len(t.deleted)
}

// Snapshot returns a copy of the tracked ids.
func (t *UnsyncedTracker) Snapshot() models.UnsyncedIDs {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// DirtyIDs returns the union of the new, edited and deleted ids.
func (t *UnsyncedTracker) DirtyIDs() map[string]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	dirty := make(map[string]struct{}, 1+len(t.edited)+len(t.deleted))
	if t.newID != "" {
		dirty[t.newID] = struct{}{}
	}
	for _, id := range t.edited {
		dirty[id] = struct{}{}
	}
	for _, d := range t.deleted {
		dirty[d.ID] = struct{}{}
	}
	return dirty
}

func (t *UnsyncedTracker) applyLocked(update UnsyncedUpdate) {
	if update.New != nil {
		t.newID = *update.New
	}

	for _, id := range update.Edited {
		if id == "" || t.deletedIndexLocked(id) >= 0 || t.editedIndexLocked(id) >= 0 {
			continue
		}
		t.edited = append(t.edited, id)
	}

	for _, d := range update.Deleted {
		if d.ID == "" {
			continue
		}
		if i := t.editedIndexLocked(d.ID); i >= 0 {
			t.edited = append(t.edited[:i], t.edited[i+1:]...)
		}
		if i := t.deletedIndexLocked(d.ID); i >= 0 {
			t.deleted[i] = d
			continue
		}
		t.deleted = append(t.deleted, d)
	}

	if t.newID != "" && (t.editedIndexLocked(t.newID) >= 0 || t.deletedIndexLocked(t.newID) >= 0) {
		t.newID = ""
	}
}

func (t *UnsyncedTracker) editedIndexLocked(id string) int {
	for i, e := range t.edited {
		if e == id {
			return i
		}
	}
	return -1
}

func (t *UnsyncedTracker) deletedIndexLocked(id string) int {
	for i, d := range t.deleted {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (t *UnsyncedTracker) snapshotLocked() models.UnsyncedIDs {
	return models.UnsyncedIDs{
		New:     t.newID,
		Edited:  append([]string(nil), t.edited...),
		Deleted: append([]models.DeletedNote(nil), t.deleted...),
	}
}

// commitLocked must be called with mu held; it releases mu before writing
// the snapshot.
func (t *UnsyncedTracker) commitLocked(ctx context.Context) error {
	t.version++
	version := t.version
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	metrics.SetUnsyncedNotes(len(snapshot.Edited) + len(snapshot.Deleted))

	t.persistMu.Lock()
	defer t.persistMu.Unlock()
	if version < t.persisted {
		return nil
	}
	t.persisted = version

	var err error
	if snapshot.IsEmpty() {
		err = t.store.DeleteUnsynced(ctx)
	} else {
		err = t.store.SaveUnsynced(ctx, snapshot)
	}
	if err != nil {
		return fmt.Errorf("persist unsynced note ids: %w", err)
	}
	return nil
}
