// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	notesTable = "notes"

	getAllNotes = `
		SELECT
			id,
			timestamp,
			delta,
			title,
			body
		FROM notes
		ORDER BY timestamp DESC;`

	insertNote = `
		INSERT INTO notes (
			id,
			timestamp,
			delta,
			title,
			body
		) VALUES (?, ?, ?, ?, ?);`

	updateNote = `
		UPDATE notes SET
			timestamp = ?,
			delta     = ?,
			title     = ?,
			body      = ?
		WHERE id = ?;`

	deleteNote = `
		DELETE FROM notes
		WHERE id = ?;`

	deleteAllNotes = `DELETE FROM notes;`

	putSecureKey = `
		INSERT INTO secure_keys (id, key_material)
		VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET key_material = excluded.key_material;`

	getSecureKey = `
		SELECT key_material
		FROM secure_keys
		WHERE id = 1;`

	clearSecureKey = `DELETE FROM secure_keys;`

	setAccessToken = `
		INSERT INTO access_tokens (username, token)
		VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET token = excluded.token;`

	getAccessToken = `
		SELECT token
		FROM access_tokens
		WHERE username = ?;`

	deleteAccessToken = `
		DELETE FROM access_tokens
		WHERE username = ?;`

	setPreference = `
		INSERT INTO preferences (pref_key, value)
		VALUES (?, ?)
		ON CONFLICT (pref_key) DO UPDATE SET value = excluded.value;`

	getPreference = `
		SELECT value
		FROM preferences
		WHERE pref_key = ?;`

	deletePreference = `
		DELETE FROM preferences
		WHERE pref_key = ?;`
)

// noteColumns is the column order used by squirrel-built statements.
var noteColumns = []string{"id", "timestamp", "delta", "title", "body"}
