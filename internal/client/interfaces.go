// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of a client process.
type Client interface {
	// Start restores persisted state and starts background workers.
	Start(ctx context.Context) error
	// Close flushes pending work and releases resources.
	Close(ctx context.Context) error
}
