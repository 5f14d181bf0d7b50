// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package models

import "errors"

// Sentinel error kinds shared across the crawl queue, file store, album
// read model, and recommendation packages (§7 of the design). Package-level
// operations wrap these with fmt.Errorf("%w: ...", ...) so callers can use
// errors.Is against a stable kind regardless of which subsystem raised it.
var (
	ErrNotFound     = errors.New("not found")
	ErrQueueFull    = errors.New("queue full")
	ErrDuplicate    = errors.New("duplicate enqueue")
	ErrParseFailure = errors.New("parse failure")
	ErrStore        = errors.New("store error")
	ErrInvalidInput = errors.New("invalid input")
	ErrPrecondition = errors.New("precondition failed")
)
