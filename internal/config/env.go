// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every notesync environment variable, so the
// Adapter.Address field is read from NOTESYNC_ADAPTER_ADDRESS.
const EnvPrefix = "NOTESYNC_"

// parseEnv fills cfg from NOTESYNC_* variables. Unset variables leave the
// field zero for the later sources to fill.
func parseEnv(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("error reading %s* environment: %w", EnvPrefix, err)
	}
	return nil
}
