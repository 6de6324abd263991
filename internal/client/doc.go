// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notesync client process runtime.
//
// It wires local storages, the server adapter, the sync services and the
// background workers (debounced push scheduler, periodic pull job) into a
// single lifecycle driven by the CLI host.
package client
