// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package eventbus implements the append-only, per-topic event log (§4.2):
// publish onto a Redis stream, and a batched, cursor-tracking consumer
// driver that dispatches events to subscriber handlers while honoring
// per-event ordering-group keys within (and across) a batch.
package eventbus
