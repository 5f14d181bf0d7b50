// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package models defines the core data types shared across the crawl
// queue, event bus, file ingestion, album read model, and recommendation
// packages: FileName/PageType, FileMetadata, AlbumReadModel/AlbumEmbedding,
// QueueItem/ItemKey, Event/Stream, and Profile/ProfileSummary.
package models
