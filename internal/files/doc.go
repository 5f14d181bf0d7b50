// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package files implements File Ingestion (§4.3): a content-addressed blob
// cache over BadgerDB plus a Redis-backed FileMetadata record, wired to
// publish FileSaved/FileDeleted onto the event bus.
package files
