// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Preference is a single user-editable setting.
type Preference struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
