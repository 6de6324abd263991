// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/models"
)

func ids(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestMergeNotes(t *testing.T) {
	local := []models.Note{note("a", 5, "local a"), note("b", 4, "local b"), note("gone", 3, "gone")}
	remote := []models.Note{note("a", 9, "remote a"), note("b", 8, "remote b"), note("c", 7, "remote c")}

	t.Run("no dirty ids takes remote", func(t *testing.T) {
		merged := mergeNotes(local, remote, map[string]struct{}{})
		assert.Equal(t, remote, merged)
	})

	t.Run("dirty ids keep local", func(t *testing.T) {
		merged := mergeNotes(local, remote, map[string]struct{}{"a": {}})
		assert.Equal(t, []string{"b", "c", "a"}, ids(merged))
		assert.Equal(t, "local a", merged[2].Content.Title)
	})

	t.Run("locally deleted id stays absent", func(t *testing.T) {
		localWithoutB := []models.Note{local[0]}
		merged := mergeNotes(localWithoutB, remote, map[string]struct{}{"b": {}})
		assert.Equal(t, []string{"a", "c"}, ids(merged))
	})

	t.Run("duplicate remote ids are dropped", func(t *testing.T) {
		merged := mergeNotes(nil, []models.Note{note("a", 1, "1"), note("a", 2, "2")}, nil)
		assert.Len(t, merged, 1)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, mergeNotes(nil, nil, nil))
	})
}

func TestApplyDiff(t *testing.T) {
	base := []models.Note{note("a", 1, "a"), note("b", 2, "b"), note("c", 3, "c")}
	changed := []models.Note{note("b", 10, "b2"), note("d", 11, "d")}

	out := applyDiff(base, changed, []string{"c"})
	assert.Equal(t, []string{"a", "b", "d"}, ids(out))
	assert.Equal(t, "b2", out[1].Content.Title)

	// удалённая и одновременно изменённая заметка остаётся удалённой
	out = applyDiff(base, []models.Note{note("x", 1, "x")}, []string{"x"})
	assert.Equal(t, []string{"a", "b", "c"}, ids(out))
}

func TestDecryptDiff(t *testing.T) {
	ctx := context.Background()
	codec := crypto.NewCodec(crypto.WithIterations(1000), crypto.WithMasterKeyCost(1, 8*1024))
	key, err := codec.DeriveKey(ctx, "alice", "pw")
	require.NoError(t, err)

	added, err := codec.EncryptNotes(ctx, []models.Note{note("new", 5, "new")}, key)
	require.NoError(t, err)

	out, err := decryptDiff(ctx, codec, key, []models.Note{note("a", 1, "a"), note("b", 2, "b")}, models.NoteDiff{
		Added:   added,
		Deleted: []string{"a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "new"}, ids(out))
	assert.Equal(t, "new", out[1].Content.Title)

	other, err := codec.DeriveKey(ctx, "alice", "other")
	require.NoError(t, err)
	_, err = decryptDiff(ctx, codec, other, nil, models.NoteDiff{Added: added})
	assert.ErrorIs(t, err, crypto.ErrEncryptor)
}
