// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package config loads layered configuration for the crawl engine:
// compiled-in defaults, an optional YAML file, then environment variable
// overrides (prefix CRAWL_), using koanf for the merge.
package config
