// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package store

import "errors"

// ErrNotFound names a missing JSON document or hash field, distinct from a
// transport/connection error. No Store method returns it: JSONGet reports a
// missing key through its ok result.
var ErrNotFound = errors.New("store: not found")
