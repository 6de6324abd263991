// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"":      {},
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// validate checks the merged [StructuredConfig] for values that cannot be
// fixed up later. Zero values are allowed here; defaults fill them in.
func (cfg *StructuredConfig) validate() error {
	if _, ok := validLogLevels[strings.ToLower(cfg.Log.Level)]; !ok {
		return ErrInvalidLogConfigs
	}
	if cfg.Workers.PushDebounce < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.Address == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	u, err := url.Parse(cfg.Adapter.Address)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.PushDebounce <= 0 || cfg.Workers.PullInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if _, ok := validLogLevels[strings.ToLower(cfg.Log.Level)]; !ok {
		return ErrInvalidLogConfigs
	}

	return nil
}

// NormalizeAddress turns a bare host:port into an http URL and strips any
// trailing slash.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return strings.TrimRight(address, "/")
}
