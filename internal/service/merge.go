// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/models"
)

// mergeNotes is the pure part of Merge.
func mergeNotes(local, remote []models.Note, dirty map[string]struct{}) []models.Note {
	merged := make([]models.Note, 0, len(local)+len(remote))
	for _, n := range local {
		if _, ok := dirty[n.ID]; ok {
			merged = append(merged, n)
		}
	}
	seen := make(map[string]struct{}, len(remote))
	for _, n := range remote {
		if _, ok := dirty[n.ID]; ok {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		merged = append(merged, n)
	}
	models.SortNotes(merged)
	return merged
}

// applyDiff folds a server diff into base: deleted ids are dropped, added
// and edited notes replace or extend base by id.
func applyDiff(base, changed []models.Note, deleted []string) []models.Note {
	gone := make(map[string]struct{}, len(deleted))
	for _, id := range deleted {
		gone[id] = struct{}{}
	}
	replaced := make(map[string]models.Note, len(changed))
	for _, n := range changed {
		replaced[n.ID] = n
	}

	out := make([]models.Note, 0, len(base)+len(changed))
	for _, n := range base {
		if _, ok := gone[n.ID]; ok {
			continue
		}
		if r, ok := replaced[n.ID]; ok {
			out = append(out, r)
			delete(replaced, n.ID)
			continue
		}
		out = append(out, n)
	}
	for _, n := range changed {
		if _, ok := replaced[n.ID]; !ok {
			continue
		}
		if _, ok := gone[n.ID]; ok {
			continue
		}
		out = append(out, n)
		delete(replaced, n.ID)
	}
	return out
}

// decryptDiff decrypts the added and edited notes of diff with key and folds
// them, together with the deleted ids, into base.
func decryptDiff(ctx context.Context, codec crypto.Codec, key crypto.KeyMaterial, base []models.Note, diff models.NoteDiff) ([]models.Note, error) {
	changed := make([]models.EncryptedNote, 0, len(diff.Added)+len(diff.Edited))
	changed = append(changed, diff.Added...)
	changed = append(changed, diff.Edited...)

	plain, err := codec.DecryptNotes(ctx, changed, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt note diff: %w", err)
	}
	return applyDiff(base, plain, diff.Deleted), nil
}
