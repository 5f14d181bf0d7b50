// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package models

import (
	"fmt"

	"github.com/oklog/ulid"
)

// Stream identifies one of the event bus's append-only log streams (§3.6).
type Stream int

const (
	StreamFile Stream = iota
	StreamParser
	StreamLookup
)

func (s Stream) Tag() string {
	switch s {
	case StreamFile:
		return "file"
	case StreamParser:
		return "parser"
	case StreamLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// RedisKey returns the append-only log key for this stream.
func (s Stream) RedisKey() string {
	return "event:stream:" + s.Tag()
}

// RedisCursorKey returns the per-subscriber cursor key for this stream.
func (s Stream) RedisCursorKey(subscriberID string) string {
	return fmt.Sprintf("event:stream:%s:cursor:%s", s.Tag(), subscriberID)
}

// EventType tags the polymorphic Event payload (§3.6, §6 wire shape).
type EventType string

const (
	EventTypeFileSaved       EventType = "FileSaved"
	EventTypeFileDeleted     EventType = "FileDeleted"
	EventTypeFileParsed      EventType = "FileParsed"
	EventTypeFileParseFailed EventType = "FileParseFailed"
)

// ParsedDataType tags the polymorphic Parsed payload carried by FileParsed.
type ParsedDataType string

const (
	ParsedDataAlbum        ParsedDataType = "Album"
	ParsedDataArtist       ParsedDataType = "Artist"
	ParsedDataChart        ParsedDataType = "Chart"
	ParsedDataSearchResult ParsedDataType = "SearchResult"
)

// ParsedData is the tagged union a parser emits on FileParsed (§4.4, §9:
// "Polymorphic parsed data ... modeled as a tagged variant rather than
// subclassing"). Exactly one of the typed fields is populated, matching
// Type.
type ParsedData struct {
	Type         ParsedDataType  `json:"type"`
	Album        *ParsedAlbum    `json:"album,omitempty"`
	Artist       *ParsedArtist   `json:"artist,omitempty"`
	Chart        *ParsedChart    `json:"chart,omitempty"`
	SearchResult *ParsedSearch   `json:"search_result,omitempty"`
}

// ParsedAlbum is the parser's output for an album page.
type ParsedAlbum struct {
	Name            string                 `json:"name"`
	Rating          float32                `json:"rating"`
	RatingCount     uint32                 `json:"rating_count"`
	Artists         []AlbumReadModelArtist `json:"artists"`
	PrimaryGenres   []string               `json:"primary_genres"`
	SecondaryGenres []string               `json:"secondary_genres"`
	Descriptors     []string               `json:"descriptors"`
	Tracks          []AlbumReadModelTrack  `json:"tracks"`
	ReleaseDate     *string                `json:"release_date,omitempty"`
	Languages       []string               `json:"languages"`
	Credits         []AlbumReadModelCredit `json:"credits"`
	CoverImageURL   *string                `json:"cover_image_url,omitempty"`
}

// ParsedArtistAlbumRef references an album discovered on an artist page.
type ParsedArtistAlbumRef struct {
	FileName FileName `json:"file_name"`
}

// ParsedArtist is the parser's output for an artist page.
type ParsedArtist struct {
	Name   string                  `json:"name"`
	Albums []ParsedArtistAlbumRef  `json:"albums"`
}

// ParsedChart is the parser's output for a chart page.
type ParsedChart struct {
	Albums []ParsedArtistAlbumRef `json:"albums"`
}

// ParsedSearch is the parser's output for an album search result page.
type ParsedSearch struct {
	Results []ParsedArtistAlbumRef `json:"results"`
}

// Event is the tagged sum of things the bus carries (§3.6).
type Event struct {
	Type     EventType   `json:"type"`
	FileID   ulid.ULID   `json:"file_id"`
	FileName FileName    `json:"file_name"`
	Data     *ParsedData `json:"data,omitempty"` // FileParsed only
	Error    string      `json:"error,omitempty"` // FileParseFailed only
}

// EventPayload is the envelope stored per event (§3.6).
type EventPayload struct {
	Event         Event             `json:"event"`
	CorrelationID *string           `json:"correlation_id,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
