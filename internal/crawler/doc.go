// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package crawler implements the Crawler Interactor (§4.8): the sole
// surface by which event subscribers add crawl work, gating every
// enqueue on the target file's staleness so already-fresh pages are
// never re-queued.
package crawler
