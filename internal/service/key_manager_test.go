// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/store"
)

func TestKeyManager_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	keyStore := mock.NewMockKeyStore(ctrl)
	km := NewKeyManager(keyStore)

	key := crypto.NewKeyMaterial([]byte("secret"))
	keyStore.EXPECT().PutKey(gomock.Any(), []byte("secret")).Return(nil)
	require.NoError(t, km.StoreKey(ctx, key))

	// второй GetKey берётся из кэша, хранилище не трогаем
	got, ok, err := km.GetKey(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(key))
}

func TestKeyManager_GetKey_LoadsFromStore(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	keyStore := mock.NewMockKeyStore(ctrl)
	km := NewKeyManager(keyStore)

	keyStore.EXPECT().GetKey(gomock.Any()).Return([]byte("persisted"), nil).Times(1)

	for i := 0; i < 3; i++ {
		got, ok, err := km.GetKey(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("persisted"), got.Bytes())
	}
}

func TestKeyManager_GetKey_Absent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	keyStore := mock.NewMockKeyStore(ctrl)
	km := NewKeyManager(keyStore)

	keyStore.EXPECT().GetKey(gomock.Any()).Return(nil, store.ErrKeyNotFound)
	got, ok, err := km.GetKey(ctx)
	require.NoError(t, err, "a missing key is a locked vault, not an error")
	assert.False(t, ok)
	assert.True(t, got.IsZero())
}

func TestKeyManager_GetKey_StoreError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	keyStore := mock.NewMockKeyStore(ctrl)
	km := NewKeyManager(keyStore)

	boom := errors.New("boom")
	keyStore.EXPECT().GetKey(gomock.Any()).Return(nil, boom)
	_, ok, err := km.GetKey(ctx)
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestKeyManager_StoreKey_RejectsZeroKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	km := NewKeyManager(mock.NewMockKeyStore(ctrl))

	err := km.StoreKey(context.Background(), crypto.KeyMaterial{})
	assert.ErrorIs(t, err, crypto.ErrEmptyKey)
}

func TestKeyManager_Reset_StoreReusable(t *testing.T) {
	ctx := context.Background()
	keyStore := &memKeyStore{}
	km := NewKeyManager(keyStore)

	require.NoError(t, km.StoreKey(ctx, crypto.NewKeyMaterial([]byte("first"))))
	require.NoError(t, km.Reset(ctx))

	_, ok, err := km.GetKey(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, km.StoreKey(ctx, crypto.NewKeyMaterial([]byte("second"))))
	got, ok, err := km.GetKey(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got.Bytes())
}
