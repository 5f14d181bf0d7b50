// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lute-crawl/config.yaml",
	"/etc/lute-crawl/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config
// file path search.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped and lower-cased-with-underscores-to-dots mapped
// for every CRAWL_-prefixed environment variable.
const envPrefix = "CRAWL_"

// Load builds a Config by layering, in order: compiled-in defaults, an
// optional YAML file, then environment variables. Each layer overrides
// only the keys it sets.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := resolveConfigPath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMap), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// resolveConfigPath returns the first existing config file path, checking
// CONFIG_PATH before falling back to DefaultConfigPaths.
func resolveConfigPath() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKeyMap turns CRAWL_REDIS_ADDR into redis.addr so it merges onto the
// same koanf key space the defaults/file layers populate.
func envKeyMap(s string) string {
	return koanfEnvKey(s)
}
