// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package models

import (
	"time"

	"github.com/oklog/ulid"
)

// FileMetadata tracks when a file was first and most recently saved.
// Upsert refreshes LastSavedAt while preserving ID and FirstSavedAt.
type FileMetadata struct {
	ID           ulid.ULID `json:"id"`
	Name         FileName  `json:"name"`
	FirstSavedAt time.Time `json:"first_saved_at"`
	LastSavedAt  time.Time `json:"last_saved_at"`
}

// IsStale reports whether this metadata is stale at time t, given the TTL
// (in days) for its page type. A missing record (nil) is always stale,
// handled by the caller since that case has no FileMetadata to call this on.
func (m *FileMetadata) IsStale(t time.Time, ttlDays int) bool {
	staleAt := m.LastSavedAt.AddDate(0, 0, ttlDays)
	return t.After(staleAt)
}
