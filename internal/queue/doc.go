// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package queue implements the priority crawl queue (§4.1): a bounded,
// deduplicated work list backed by a Redis sorted set (priority score,
// serialized ItemKey member) plus a companion hash of item payloads and
// per-item claim-lease keys with TTL.
package queue
