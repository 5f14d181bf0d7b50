// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package storekeys defines the key schema for the Redis-backed KV+Index
// backend (§6), one small function per key shape.
package storekeys

import "fmt"

const (
	AlbumNamespace     = "album"
	AlbumIndexName     = "album_idx"
	QueueKey           = "crawler:queue"
	FileMetadataPrefix = "file_metadata"
)

// Album returns the document key for an album file name.
func Album(fileName string) string {
	return fmt.Sprintf("%s:%s", AlbumNamespace, fileName)
}

// FileMetadata returns the document key for a file's ingestion metadata.
func FileMetadata(fileName string) string {
	return fmt.Sprintf("%s:%s", FileMetadataPrefix, fileName)
}

// QueueItems returns the hash key holding queue item records by dedup key.
func QueueItems() string {
	return QueueKey + ":items"
}

// QueueClaimed returns the claim-lease key for a serialized ItemKey.
func QueueClaimed(itemKey string) string {
	return QueueKey + ":claimed:" + itemKey
}

// QueueClaimedPrefix returns the glob prefix under which all claim-lease
// keys live, for enumeration.
func QueueClaimedPrefix() string {
	return QueueKey + ":claimed:"
}

// EventStream returns the append-only log key for a stream tag.
func EventStream(streamTag string) string {
	return "event:stream:" + streamTag
}

// EventCursor returns the per-subscriber cursor key for a stream tag.
func EventCursor(streamTag, subscriberID string) string {
	return fmt.Sprintf("event:stream:%s:cursor:%s", streamTag, subscriberID)
}
