package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultAdapterAddress = "http://localhost:8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultPushDebounce   = 500 * time.Millisecond
	DefaultLogLevel       = "info"

	defaultDBFile  = "notesync.db"
	defaultLogFile = "notesync.log"
)

// defaultConfig returns the lowest-priority configuration layer.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			Address:        DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: defaultPath(defaultDBFile)},
		},
		Workers: Workers{
			PushDebounce: DefaultPushDebounce,
		},
		Log: Log{
			File:  defaultPath(defaultLogFile),
			Level: DefaultLogLevel,
		},
	}
}

// defaultPath places file in the user config directory, falling back to the
// working directory.
func defaultPath(file string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return file
	}
	return filepath.Join(dir, "notesync", file)
}
