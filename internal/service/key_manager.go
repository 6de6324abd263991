// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/store"
)

// KeyManager owns the password-derived key. It caches the key in memory
// and persists it only to the dedicated key store.
type KeyManager struct {
	store store.KeyStore

	mu     sync.RWMutex
	cached crypto.KeyMaterial
}

func NewKeyManager(keyStore store.KeyStore) *KeyManager {
	return &KeyManager{store: keyStore}
}

// StoreKey persists key and caches it.
func (k *KeyManager) StoreKey(ctx context.Context, key crypto.KeyMaterial) error {
	if key.IsZero() {
		return fmt.Errorf("store key: %w", crypto.ErrEmptyKey)
	}
	if err := k.store.PutKey(ctx, key.Bytes()); err != nil {
		return fmt.Errorf("store key: %w", err)
	}

	k.mu.Lock()
	k.cached = key
	k.mu.Unlock()
	return nil
}

// GetKey returns the cached key, loading it from the key store on a cache
// miss. ok is false when no key exists anywhere; callers treat that as a
// locked vault, not a failure.
func (k *KeyManager) GetKey(ctx context.Context) (key crypto.KeyMaterial, ok bool, err error) {
	k.mu.RLock()
	cached := k.cached
	k.mu.RUnlock()
	if !cached.IsZero() {
		return cached, true, nil
	}

	raw, err := k.store.GetKey(ctx)
	if errors.Is(err, store.ErrKeyNotFound) {
		return crypto.KeyMaterial{}, false, nil
	}
	if err != nil {
		return crypto.KeyMaterial{}, false, fmt.Errorf("load key: %w", err)
	}

	key = crypto.NewKeyMaterial(raw)
	k.mu.Lock()
	k.cached = key
	k.mu.Unlock()
	return key, true, nil
}

// Reset drops the cached key and empties the key store. The store stays
// usable for a later StoreKey.
func (k *KeyManager) Reset(ctx context.Context) error {
	k.mu.Lock()
	k.cached = crypto.KeyMaterial{}
	k.mu.Unlock()

	if err := k.store.ClearKey(ctx); err != nil {
		return fmt.Errorf("clear key: %w", err)
	}

	// a GetKey racing the clear may have re-cached the old key
	k.mu.Lock()
	k.cached = crypto.KeyMaterial{}
	k.mu.Unlock()
	return nil
}
