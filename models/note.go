// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// NoteContent is the editable body of a note.
type NoteContent struct {
	// Delta is the rich-text operation log produced by the editor. It is
	// carried verbatim and never interpreted by the sync engine.
	Delta json.RawMessage `json:"delta"`

	// Title is the plain-text first line of the note.
	Title string `json:"title"`

	// Body is the plain-text remainder of the note.
	Body string `json:"body"`
}

// Equal reports whether two contents are identical, including the delta.
func (c NoteContent) Equal(other NoteContent) bool {
	return c.Title == other.Title &&
		c.Body == other.Body &&
		bytes.Equal(bytes.TrimSpace(c.Delta), bytes.TrimSpace(other.Delta))
}

// Note is a single plaintext note held in the editable note list.
//
// ID is a UUIDv4 fixed for the lifetime of the note. Timestamp is the
// last-modified time in epoch milliseconds.
type Note struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Content   NoteContent `json:"content"`
}

// IsEmpty reports whether the note has neither a title nor a body. Empty
// notes are never sent to the server.
func (n Note) IsEmpty() bool {
	return n.Content.Title == "" && n.Content.Body == ""
}

// NewEmptyNote returns a fresh note with empty content.
func NewEmptyNote(id string, timestamp int64) Note {
	return Note{
		ID:        id,
		Timestamp: timestamp,
		Content:   NoteContent{Delta: json.RawMessage(`{"ops":[]}`)},
	}
}

// SortNotes orders notes by timestamp, most recent first. Notes with equal
// timestamps keep their relative order.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp > notes[j].Timestamp
	})
}

// NonEmptyNotes returns the notes that have a title or a body.
func NonEmptyNotes(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if !n.IsEmpty() {
			out = append(out, n)
		}
	}
	return out
}

// EncryptedNote is the wire and at-rest representation of a note.
//
// Content is either a JSON string holding base64(salt || iv || ciphertext)
// or, for notes that predate encryption, the plaintext [NoteContent] object.
type EncryptedNote struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Content   json.RawMessage `json:"content"`
}

// DeletedNote is a tombstone that lets the server tell "deleted" apart from
// "never existed".
type DeletedNote struct {
	ID        string `json:"id"`
	DeletedAt int64  `json:"deleted_at"`
}
