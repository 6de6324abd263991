// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// notesync client. It aggregates all sub-configurations and is populated by
// merging values from command-line flags, environment variables, an optional
// JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//
// Every variable is read with [EnvPrefix] in front.
type StructuredConfig struct {
	// Adapter holds the sync server address and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local SQLite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds timing for the push scheduler and the pull job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds log destination and verbosity.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via NOTESYNC_CONFIG or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds configuration of the HTTP transport to the sync server.
type Adapter struct {
	// Address is the base URL of the sync server
	// (e.g. "https://notes.example.com"). A bare host:port is accepted and
	// treated as http.
	// Env: NOTESYNC_ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single request
	// (e.g. "10s").
	// Env: NOTESYNC_ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for local storage backends.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite data source name, usually a file path.
	// Env: NOTESYNC_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// PushDebounce is the quiet period after the last local edit before an
	// automatic push fires.
	// Env: NOTESYNC_WORKERS_PUSH_DEBOUNCE
	PushDebounce time.Duration `env:"PUSH_DEBOUNCE"`

	// PullInterval is the period of the background pull job. Zero or a
	// negative value disables it.
	// Env: NOTESYNC_WORKERS_PULL_INTERVAL
	PullInterval time.Duration `env:"PULL_INTERVAL"`
}

// Log holds logger settings.
type Log struct {
	// File is the path of the rotated log file. Empty logs to stderr.
	// Env: NOTESYNC_LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Env: NOTESYNC_LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Command-line flags (when fs is non-nil)
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(fs FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(fs).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
