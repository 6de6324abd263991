// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/go-note-sync/models"
)

const (
	saltSize    = 16
	ivSize      = 12
	dataKeySize = 32 // AES-256

	// DefaultIterations is the PBKDF2 work factor used for every data key.
	DefaultIterations = 100_000

	masterKeySize  = 32
	masterKeySalt  = "notesync/master-key/v1:"
	argonTime      = 1
	argonMemoryKiB = 64 * 1024 // 64 MiB
	argonThreads   = 4
)

var (
	// ErrEncryptor marks every codec failure.
	ErrEncryptor = errors.New("encryptor failure")

	// ErrCiphertextTooShort is returned for blobs shorter than salt+iv.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrEmptyKey is returned when an operation is attempted without key
	// material.
	ErrEmptyKey = errors.New("empty key material")
)

// KeyMaterial is the master key derived from the account credentials. It
// is opaque outside this package and the key store that persists it.
type KeyMaterial struct {
	raw []byte
	set bool
}

// NewKeyMaterial wraps raw bytes loaded from a key store. The slice is
// copied.
func NewKeyMaterial(raw []byte) KeyMaterial {
	return KeyMaterial{raw: append([]byte(nil), raw...), set: true}
}

// Bytes returns a copy of the raw key material for persistence.
func (k KeyMaterial) Bytes() []byte {
	return append([]byte(nil), k.raw...)
}

// IsZero reports whether no material is held.
func (k KeyMaterial) IsZero() bool {
	return !k.set
}

// Equal reports whether two key materials hold the same bytes.
func (k KeyMaterial) Equal(other KeyMaterial) bool {
	return k.set == other.set && bytes.Equal(k.raw, other.raw)
}

type codec struct {
	iterations  int
	argonTime   uint32
	argonMemory uint32
}

// CodecOption configures the codec returned by [NewCodec].
type CodecOption func(*codec)

// WithIterations overrides the PBKDF2 iteration count. Values below 1 are
// ignored. Intended for tests; production code uses [DefaultIterations].
func WithIterations(n int) CodecOption {
	return func(c *codec) {
		if n > 0 {
			c.iterations = n
		}
	}
}

// WithMasterKeyCost overrides the Argon2id time and memory (KiB) cost of
// DeriveKey. Zero values keep the defaults.
func WithMasterKeyCost(time, memoryKiB uint32) CodecOption {
	return func(c *codec) {
		if time > 0 {
			c.argonTime = time
		}
		if memoryKiB > 0 {
			c.argonMemory = memoryKiB
		}
	}
}

// NewCodec constructs the AES-GCM/PBKDF2 [Codec].
func NewCodec(opts ...CodecOption) Codec {
	c := &codec{
		iterations:  DefaultIterations,
		argonTime:   argonTime,
		argonMemory: argonMemoryKiB,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeriveKey implements [Codec].
func (c *codec) DeriveKey(ctx context.Context, username, password string) (KeyMaterial, error) {
	if err := ctx.Err(); err != nil {
		return KeyMaterial{}, fmt.Errorf("%w: derive key: %w", ErrEncryptor, err)
	}

	// the salt must be the same on every device of the account
	salt := sha256.Sum256([]byte(masterKeySalt + username))
	raw := argon2.IDKey([]byte(password), salt[:], c.argonTime, c.argonMemory, argonThreads, masterKeySize)

	return KeyMaterial{raw: raw, set: true}, nil
}

// Encrypt implements [Codec].
func (c *codec) Encrypt(plaintext []byte, key KeyMaterial) (string, error) {
	if key.IsZero() {
		return "", fmt.Errorf("%w: %w", ErrEncryptor, ErrEmptyKey)
	}

	// 1. Fresh salt and IV per call
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", ErrEncryptor, err)
	}
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("%w: generate iv: %w", ErrEncryptor, err)
	}

	// 2. Per-call data key
	gcm, err := c.newGCM(key, salt)
	if err != nil {
		return "", err
	}

	// 3. salt || iv || ciphertext
	ciphertext := gcm.Seal(nil, iv, plaintext, nil)
	blob := make([]byte, 0, saltSize+ivSize+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Codec].
func (c *codec) Decrypt(encoded string, key KeyMaterial) ([]byte, error) {
	if key.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrEncryptor, ErrEmptyKey)
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrEncryptor, err)
	}
	if len(blob) < saltSize+ivSize {
		return nil, fmt.Errorf("%w: %w", ErrEncryptor, ErrCiphertextTooShort)
	}

	salt := blob[:saltSize]
	iv := blob[saltSize : saltSize+ivSize]
	ciphertext := blob[saltSize+ivSize:]

	gcm, err := c.newGCM(key, salt)
	if err != nil {
		return nil, err
	}

	// An authentication failure here almost always means a wrong password.
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt: %w", ErrEncryptor, err)
	}
	return plaintext, nil
}

func (c *codec) newGCM(key KeyMaterial, salt []byte) (cipher.AEAD, error) {
	dataKey := pbkdf2.Key(key.raw, salt, c.iterations, dataKeySize, sha256.New)

	block, err := aes.NewCipher(dataKey)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %w", ErrEncryptor, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %w", ErrEncryptor, err)
	}
	return gcm, nil
}

// EncryptNotes implements [Codec].
func (c *codec) EncryptNotes(ctx context.Context, notes []models.Note, key KeyMaterial) ([]models.EncryptedNote, error) {
	out := make([]models.EncryptedNote, 0, len(notes))
	for _, n := range notes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncryptor, err)
		}

		plaintext, err := json.Marshal(n.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal note %s: %w", ErrEncryptor, n.ID, err)
		}
		blob, err := c.Encrypt(plaintext, key)
		if err != nil {
			return nil, fmt.Errorf("encrypt note %s: %w", n.ID, err)
		}
		content, err := json.Marshal(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal ciphertext %s: %w", ErrEncryptor, n.ID, err)
		}

		out = append(out, models.EncryptedNote{ID: n.ID, Timestamp: n.Timestamp, Content: content})
	}
	return out, nil
}

// DecryptNotes implements [Codec].
func (c *codec) DecryptNotes(ctx context.Context, notes []models.EncryptedNote, key KeyMaterial) ([]models.Note, error) {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncryptor, err)
		}

		content, err := c.decryptContent(n.Content, key)
		if err != nil {
			return nil, fmt.Errorf("decrypt note %s: %w", n.ID, err)
		}
		out = append(out, models.Note{ID: n.ID, Timestamp: n.Timestamp, Content: content})
	}
	return out, nil
}

func (c *codec) decryptContent(raw json.RawMessage, key KeyMaterial) (models.NoteContent, error) {
	var content models.NoteContent

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return content, fmt.Errorf("%w: missing content", ErrEncryptor)
	}

	switch trimmed[0] {
	case '{':
		// plaintext content from before encryption was enabled
		if err := json.Unmarshal(trimmed, &content); err != nil {
			return content, fmt.Errorf("%w: unmarshal plaintext content: %w", ErrEncryptor, err)
		}
		return content, nil
	case '"':
		var blob string
		if err := json.Unmarshal(trimmed, &blob); err != nil {
			return content, fmt.Errorf("%w: unmarshal ciphertext: %w", ErrEncryptor, err)
		}
		plaintext, err := c.Decrypt(blob, key)
		if err != nil {
			return content, err
		}
		if err = json.Unmarshal(plaintext, &content); err != nil {
			return content, fmt.Errorf("%w: unmarshal content: %w", ErrEncryptor, err)
		}
		return content, nil
	default:
		return content, fmt.Errorf("%w: unsupported content encoding", ErrEncryptor)
	}
}
