// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NoteDiff is the server's view of what changed relative to the notes the
// client submitted on login or sync.
type NoteDiff struct {
	Added   []EncryptedNote `json:"added"`
	Edited  []EncryptedNote `json:"edited"`
	Deleted []string        `json:"deleted"`
}

// IsEmpty reports whether the diff carries no changes.
func (d NoteDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Edited) == 0 && len(d.Deleted) == 0
}

// LoginResponse is returned by POST /auth/login. The access token travels in
// the Authorization response header, not in the body.
type LoginResponse struct {
	NoteDiff NoteDiff `json:"note_diff"`
}

// PullResponse is returned by GET /notes/pull.
type PullResponse struct {
	Notes []EncryptedNote `json:"notes"`
}

// SyncResponse is returned by PUT /notes/sync. The server answers with
// either a diff or the full remote note set; Notes is nil when absent.
type SyncResponse struct {
	NoteDiff *NoteDiff       `json:"note_diff,omitempty"`
	Notes    []EncryptedNote `json:"notes,omitempty"`
}
