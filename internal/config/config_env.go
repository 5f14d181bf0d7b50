// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package config

import "strings"

// koanfEnvKey converts an env var name like "CRAWL_REDIS_ADDR" into the
// dotted koanf key "redis.addr", matching the nested Config struct tags.
// Only the underscore after the section name becomes a dot, so
// "CRAWL_QUEUE_MAX_SIZE" maps to "queue.max_size".
func koanfEnvKey(envVar string) string {
	lower := strings.ToLower(strings.TrimPrefix(envVar, envPrefix))
	for _, section := range []string{"redis", "queue", "ttl", "event_bus", "recommend", "files", "server"} {
		if rest, ok := strings.CutPrefix(lower, section+"_"); ok {
			return section + "." + rest
		}
	}
	return strings.ReplaceAll(lower, "_", ".")
}
