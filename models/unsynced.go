// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UnsyncedIDs is the persisted snapshot of every note id that has local
// changes not yet confirmed by the server.
//
// New is never a member of Edited or Deleted, and Edited and Deleted are
// disjoint.
type UnsyncedIDs struct {
	New     string        `json:"new"`
	Edited  []string      `json:"edited"`
	Deleted []DeletedNote `json:"deleted"`
}

// IsEmpty reports whether nothing at all is tracked, including New.
func (u UnsyncedIDs) IsEmpty() bool {
	return u.New == "" && len(u.Edited) == 0 && len(u.Deleted) == 0
}

// DeletedIDs returns the ids of the tombstones in Deleted.
func (u UnsyncedIDs) DeletedIDs() []string {
	ids := make([]string, 0, len(u.Deleted))
	for _, d := range u.Deleted {
		ids = append(ids, d.ID)
	}
	return ids
}
