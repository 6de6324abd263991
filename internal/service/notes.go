// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/events"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

const dialogTitleNoteStore = "Unable to save notes"

// IDGenerator issues note ids.
type IDGenerator interface {
	Generate() string
}

// NoteService owns the editable note list. Every mutation is written to the
// note store first, then applied to the in-memory list, then recorded by the
// tracker, so a push snapshot taken at any point either sees the new content
// or leaves the id tracked.
//
// The list is never empty once loaded.
type NoteService struct {
	store    store.NoteStore
	exporter store.NoteExporter
	tracker  *UnsyncedTracker
	bus      *events.Bus
	ids      IDGenerator
	now      func() time.Time
	logger   *logger.Logger

	// writeMu serializes mutations, including their store round trip.
	writeMu sync.Mutex

	mu       sync.RWMutex
	notes    []models.Note
	selected string
}

func NewNoteService(
	noteStore store.NoteStore,
	exporter store.NoteExporter,
	tracker *UnsyncedTracker,
	bus *events.Bus,
	ids IDGenerator,
	logger *logger.Logger,
) *NoteService {
	return &NoteService{
		store:    noteStore,
		exporter: exporter,
		tracker:  tracker,
		bus:      bus,
		ids:      ids,
		now:      time.Now,
		logger:   logger,
	}
}

// Load reads all notes from the note store. An empty store gets one fresh
// empty note, which is not tracked as new.
func (s *NoteService) Load(ctx context.Context) ([]models.Note, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	notes, err := s.store.GetAllNotes(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, "load notes", err)
	}

	if len(notes) == 0 {
		fresh := models.NewEmptyNote(s.ids.Generate(), s.nowMillis())
		if err = s.store.NewNote(ctx, fresh); err != nil {
			return nil, s.storeFailure(ctx, "create note", err)
		}
		notes = []models.Note{fresh}
	}
	models.SortNotes(notes)

	s.mu.Lock()
	s.notes = notes
	if s.indexLocked(s.selected) < 0 {
		s.selected = notes[0].ID
	}
	out := cloneNotes(s.notes)
	s.mu.Unlock()

	return out, nil
}

// List returns a copy of the note list, most recent first.
func (s *NoteService) List() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Get returns the note with id.
func (s *NoteService) Get(id string) (models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return s.notes[i], nil
}

// Selected returns the id of the selected note.
func (s *NoteService) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select changes the selected note.
func (s *NoteService) Select(id string) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	changed := s.selected != id
	s.selected = id
	s.mu.Unlock()

	if changed {
		s.bus.SelectionChanges.Publish(events.SelectionChanged{NoteID: id})
	}
	return nil
}

// Create adds a fresh empty note, tracks it as new and selects it.
func (s *NoteService) Create(ctx context.Context) (models.Note, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	note := models.NewEmptyNote(s.ids.Generate(), s.nowMillis())
	if err := s.store.NewNote(ctx, note); err != nil {
		return models.Note{}, s.storeFailure(ctx, "create note", err)
	}

	s.mu.Lock()
	s.notes = append([]models.Note{note}, s.notes...)
	s.selected = note.ID
	s.mu.Unlock()

	if err := s.tracker.Set(ctx, UnsyncedUpdate{New: &note.ID}); err != nil {
		s.logger.Err(err).Str("note_id", note.ID).Msg("failed to track new note")
	}

	s.bus.NoteMutations.Publish(events.NoteMutation{Kind: events.MutationNew, NoteID: note.ID})
	s.bus.SelectionChanges.Publish(events.SelectionChanged{NoteID: note.ID})
	return note, nil
}

// Edit replaces the content of note id and bumps its timestamp.
func (s *NoteService) Edit(ctx context.Context, id string, content models.NoteContent) (models.Note, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.Get(id)
	if err != nil {
		return models.Note{}, err
	}
	if len(content.Delta) == 0 {
		content.Delta = current.Content.Delta
	}

	edited := models.Note{ID: id, Timestamp: s.nowMillis(), Content: content}
	if err = s.store.EditNote(ctx, edited); err != nil {
		return models.Note{}, s.storeFailure(ctx, "edit note", err)
	}

	s.mu.Lock()
	if i := s.indexLocked(id); i >= 0 {
		s.notes[i] = edited
		models.SortNotes(s.notes)
	}
	s.mu.Unlock()

	if err = s.tracker.Set(ctx, UnsyncedUpdate{Edited: []string{id}}); err != nil {
		s.logger.Err(err).Str("note_id", id).Msg("failed to track edited note")
	}

	s.bus.NoteMutations.Publish(events.NoteMutation{Kind: events.MutationEdit, NoteID: id})
	return edited, nil
}

// Delete removes note id and records a tombstone. Deleting the last note
// adds a fresh empty note tracked as new, so the list never becomes empty.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return s.storeFailure(ctx, "delete note", err)
	}

	now := s.nowMillis()
	update := UnsyncedUpdate{Deleted: []models.DeletedNote{{ID: id, DeletedAt: now}}}

	var fresh *models.Note
	if len(s.List()) == 1 {
		n := models.NewEmptyNote(s.ids.Generate(), now)
		if err := s.store.NewNote(ctx, n); err != nil {
			// the deletion itself went through; still track it
			s.logger.Err(err).Str("note_id", n.ID).Msg("failed to create replacement note")
		}
		fresh = &n
		update.New = &n.ID
	}

	s.mu.Lock()
	if i := s.indexLocked(id); i >= 0 {
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
	}
	if fresh != nil {
		s.notes = append([]models.Note{*fresh}, s.notes...)
	}
	selectionChanged := s.indexLocked(s.selected) < 0
	if selectionChanged {
		s.selected = s.notes[0].ID
	}
	selected := s.selected
	s.mu.Unlock()

	if err := s.tracker.Set(ctx, update); err != nil {
		s.logger.Err(err).Str("note_id", id).Msg("failed to track deleted note")
	}

	s.bus.NoteMutations.Publish(events.NoteMutation{Kind: events.MutationDelete, NoteID: id})
	if fresh != nil {
		s.bus.NoteMutations.Publish(events.NoteMutation{Kind: events.MutationNew, NoteID: fresh.ID})
	}
	if selectionChanged {
		s.bus.SelectionChanges.Publish(events.SelectionChanged{NoteID: selected})
	}
	return nil
}

// Export writes every non-empty note to dir as a text file.
func (s *NoteService) Export(ctx context.Context, dir string) ([]string, error) {
	paths, err := s.exporter.ExportNotes(ctx, dir, s.List())
	if err != nil {
		return paths, s.storeFailure(ctx, "export notes", err)
	}
	return paths, nil
}

// Merge reconciles the local list with remote.
//
// Every dirty id (new, edited or deleted) keeps its local version, or stays
// absent if it was deleted locally; every other id takes the remote
// version. The result is sorted most recent first, gets one fresh empty
// note if it would otherwise be empty, and replaces both the in-memory list
// and the note store contents. There is no field-level merge: a dirty note
// wins entirely.
func (s *NoteService) Merge(ctx context.Context, remote []models.Note) []models.Note {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	dirty := s.tracker.DirtyIDs()
	merged := mergeNotes(s.List(), remote, dirty)
	if len(merged) == 0 {
		merged = []models.Note{models.NewEmptyNote(s.ids.Generate(), s.nowMillis())}
	}

	s.mu.Lock()
	s.notes = merged
	selectionChanged := s.indexLocked(s.selected) < 0
	if selectionChanged {
		s.selected = merged[0].ID
	}
	selected := s.selected
	out := cloneNotes(merged)
	s.mu.Unlock()

	if selectionChanged {
		s.bus.SelectionChanges.Publish(events.SelectionChanged{NoteID: selected})
	}

	if err := s.store.SyncLocalNotes(ctx, out); err != nil {
		_ = s.storeFailure(ctx, "save merged notes", err)
	}
	return out
}

func (s *NoteService) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteService) nowMillis() int64 {
	return s.now().UnixMilli()
}

// storeFailure logs a local note store failure and asks the host to show a
// blocking dialog.
func (s *NoteService) storeFailure(ctx context.Context, action string, err error) error {
	s.logger.ForOperation(ctx).Err(err).
		Str("func", "NoteService.storeFailure").
		Str("action", action).
		Msg("local note store failure")

	s.bus.Dialogs.Publish(events.Dialog{
		Title:   dialogTitleNoteStore,
		Message: fmt.Sprintf("Failed to %s, please try again.", action),
	})
	return fmt.Errorf("%s: %w", action, err)
}

func cloneNotes(notes []models.Note) []models.Note {
	return append([]models.Note(nil), notes...)
}
