// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package config

import "fmt"

// Validate checks invariants Load's three layers can't enforce on their own
// (e.g. a config file setting max_size to 0).
func (c *Config) Validate() error {
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr must not be empty")
	}
	if c.Queue.MaxSize <= 0 {
		return fmt.Errorf("queue.max_size must be positive")
	}
	if c.Queue.ClaimTTL <= 0 {
		return fmt.Errorf("queue.claim_ttl must be positive")
	}
	if c.Recommend.NoveltyScore < 0 || c.Recommend.NoveltyScore > 1 {
		return fmt.Errorf("recommend.novelty_score must be in [0,1]")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
