// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

/*
Package metrics provides Prometheus instrumentation for the ingestion and
recommendation pipeline.

Metrics cover the priority crawl queue, event bus subscriber batches, file
ingestion (including the in-process freshness cache fronting IsFileStale),
parser dispatch outcomes, the quantile-rank recommendation engine, the
Redis circuit breaker, and the thin HTTP surface. All recording functions
are safe for concurrent use - the Prometheus client library handles
synchronization internally.

Metrics are registered with the default Prometheus registry via promauto;
cmd/server mounts no /metrics handler for them.
*/
package metrics
