package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// FlagSet is the subset of *pflag.FlagSet the flags layer reads from.
// cobra's PersistentFlags() satisfies it.
type FlagSet interface {
	GetString(name string) (string, error)
	GetDuration(name string) (time.Duration, error)
}

const (
	flagAddress        = "address"
	flagRequestTimeout = "request-timeout"
	flagDSN            = "dsn"
	flagPushDebounce   = "push-debounce"
	flagPullInterval   = "pull-interval"
	flagLogFile        = "log-file"
	flagLogLevel       = "log-level"
	flagConfig         = "config"
)

// RegisterFlags defines all configuration flags on fs. Every flag defaults
// to its zero value so that unset flags never shadow lower layers.
//
// Flags:
//
//	-a/--address          sync server base URL or host:port
//	--request-timeout     request timeout (e.g., "10s")
//	-d/--dsn              local SQLite database path
//	--push-debounce       auto-push quiet period (e.g., "500ms")
//	--pull-interval       background pull period (e.g., "1m"), negative disables
//	--log-file            rotated log file path
//	--log-level           log level
//	-c/--config           json file path with configs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagAddress, "a", "", "Sync server address")
	fs.Duration(flagRequestTimeout, 0, "Request timeout (e.g., 10s)")
	fs.StringP(flagDSN, "d", "", "Local database path")
	fs.Duration(flagPushDebounce, 0, "Auto-push debounce (e.g., 500ms)")
	fs.Duration(flagPullInterval, 0, "Background pull interval (e.g., 1m), negative disables")
	fs.String(flagLogFile, "", "Log file path")
	fs.String(flagLogLevel, "", "Log level (trace, debug, info, warn, error)")
	fs.StringP(flagConfig, "c", "", "JSON config file path")
}

// ParseFlags reads the flags defined by [RegisterFlags] from fs.
func ParseFlags(fs FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	strs := []struct {
		name string
		dst  *string
	}{
		{flagAddress, &cfg.Adapter.Address},
		{flagDSN, &cfg.Storage.DB.DSN},
		{flagLogFile, &cfg.Log.File},
		{flagLogLevel, &cfg.Log.Level},
		{flagConfig, &cfg.JSONFilePath},
	}
	for _, s := range strs {
		v, err := fs.GetString(s.name)
		if err != nil {
			return nil, fmt.Errorf("error reading flag %q: %w", s.name, err)
		}
		*s.dst = v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{flagRequestTimeout, &cfg.Adapter.RequestTimeout},
		{flagPushDebounce, &cfg.Workers.PushDebounce},
		{flagPullInterval, &cfg.Workers.PullInterval},
	}
	for _, d := range durations {
		v, err := fs.GetDuration(d.name)
		if err != nil {
			return nil, fmt.Errorf("error reading flag %q: %w", d.name, err)
		}
		*d.dst = v
	}

	return cfg, nil
}
