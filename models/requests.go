// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Notes    []EncryptedNote `json:"notes"`
}

// LoginRequest is the body of POST /auth/login. DeletedNotes carries the
// tombstones accumulated while logged out so the server can drop them
// before computing its diff.
type LoginRequest struct {
	Username     string          `json:"username"`
	Password     string          `json:"password"`
	Notes        []EncryptedNote `json:"notes"`
	DeletedNotes []DeletedNote   `json:"deleted_notes"`
}

// SyncRequest is the body of PUT /notes/sync.
type SyncRequest struct {
	Notes          []EncryptedNote `json:"notes"`
	DeletedNoteIDs []string        `json:"deleted_note_ids"`
}

// ChangePasswordRequest is the body of PUT /account/password/change. Notes
// are re-encrypted with the key derived from NewPassword.
type ChangePasswordRequest struct {
	CurrentPassword string          `json:"current_password"`
	NewPassword     string          `json:"new_password"`
	Notes           []EncryptedNote `json:"notes"`
}
