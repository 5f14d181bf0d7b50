// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package albums implements the Album Read Model & Search Index (§4.5):
// a RediSearch-backed JSON document store with derived count/tag fields
// for filtering, an embedding sub-document keyed by source, and the
// duplicate-reconciliation algorithm that keeps duplicate_of/duplicates
// consistent across an artist's albums.
package albums
