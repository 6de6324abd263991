// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements end-to-end encryption of note content.
//
// The password is stretched once into a master key ([KeyMaterial]) with
// Argon2id, salted by the username so every device derives the same key.
// Only the master key is ever persisted. Every call to Encrypt then derives
// a fresh AES-256-GCM data key from it and a random salt:
//
//	masterKey = Argon2id(password, SHA-256(username), 1, 64 MiB, 4, 32 bytes)
//	dataKey   = PBKDF2-SHA256(masterKey, salt, 100000 iterations, 32 bytes)
//	blob    = base64(salt[16] || iv[12] || AES-GCM(dataKey, iv, plaintext))
//
// Decrypt slices the blob positionally and reverses the process.
package crypto

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec encrypts and decrypts note content with a password-derived key.
// All failures wrap [ErrEncryptor]; no partial result is ever returned.
type Codec interface {
	// DeriveKey stretches password into the account's master key. The
	// result is deterministic for a given username and password.
	DeriveKey(ctx context.Context, username, password string) (KeyMaterial, error)

	// Encrypt returns base64(salt || iv || ciphertext) for plaintext.
	Encrypt(plaintext []byte, key KeyMaterial) (string, error)

	// Decrypt is the exact inverse of Encrypt.
	Decrypt(blob string, key KeyMaterial) ([]byte, error)

	// EncryptNotes encrypts the Content of every note, leaving ID and
	// Timestamp untouched.
	EncryptNotes(ctx context.Context, notes []models.Note, key KeyMaterial) ([]models.EncryptedNote, error)

	// DecryptNotes decrypts the Content of every note. A note whose content
	// is already a structured object is passed through as plaintext.
	DecryptNotes(ctx context.Context, notes []models.EncryptedNote, key KeyMaterial) ([]models.Note, error)
}
