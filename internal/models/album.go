// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package models

import (
	"sort"
	"strings"
)

// AlbumReadModelArtist is an artist reference attached to an album.
type AlbumReadModelArtist struct {
	Name     string   `json:"name"`
	FileName FileName `json:"file_name"`
}

// AlbumReadModelTrack is a single track on an album.
type AlbumReadModelTrack struct {
	Name            string   `json:"name"`
	DurationSeconds *uint32  `json:"duration_seconds,omitempty"`
	Rating          *float32 `json:"rating,omitempty"`
	Position        *string  `json:"position,omitempty"`
}

// AlbumReadModelCredit attaches an artist to a set of credited roles.
type AlbumReadModelCredit struct {
	Artist AlbumReadModelArtist `json:"artist"`
	Roles  []string             `json:"roles"`
}

// AlbumReadModel is the canonical album projection (§3.3). Derived count
// fields and name_tag are computed at serialization time by the search
// index layer (internal/albums), not stored redundantly on this type, so
// that "derived counts equal source field lengths" (invariant 6) can never
// drift from the source slices.
type AlbumReadModel struct {
	Name            string                 `json:"name"`
	FileName        FileName               `json:"file_name"`
	Rating          float32                `json:"rating"`
	RatingCount     uint32                 `json:"rating_count"`
	Artists         []AlbumReadModelArtist `json:"artists"`
	PrimaryGenres   []string               `json:"primary_genres"`
	SecondaryGenres []string               `json:"secondary_genres"`
	Descriptors     []string               `json:"descriptors"`
	Tracks          []AlbumReadModelTrack  `json:"tracks"`
	ReleaseDate     *string                `json:"release_date,omitempty"` // "YYYY-MM-DD"
	Languages       []string               `json:"languages"`
	Credits         []AlbumReadModelCredit `json:"credits"`
	CoverImageURL   *string                `json:"cover_image_url,omitempty"`

	// Duplicate linkage (§3.3): at most one of these is non-empty.
	DuplicateOf *FileName  `json:"duplicate_of,omitempty"`
	Duplicates  []FileName `json:"duplicates,omitempty"`
}

// AsciiName returns the ASCII-lowercased name used for duplicate matching.
func (a *AlbumReadModel) AsciiName() string {
	return strings.ToLower(a.Name)
}

// CreditTags returns the deduplicated, sorted set of role strings across
// all credits, used as the fourth scoring axis in the recommender and as
// the credit_tag tag-field values in the search index.
func (a *AlbumReadModel) CreditTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, c := range a.Credits {
		for _, role := range c.Roles {
			if _, ok := seen[role]; ok {
				continue
			}
			seen[role] = struct{}{}
			tags = append(tags, role)
		}
	}
	sort.Strings(tags)
	return tags
}

// ReleaseYear derives the release year from ReleaseDate, if present.
func (a *AlbumReadModel) ReleaseYear() *uint32 {
	if a.ReleaseDate == nil || len(*a.ReleaseDate) < 4 {
		return nil
	}
	var year uint32
	for _, r := range (*a.ReleaseDate)[:4] {
		if r < '0' || r > '9' {
			return nil
		}
		year = year*10 + uint32(r-'0')
	}
	return &year
}

// AlbumEmbedding is a named vector sub-document attached to an album,
// surviving read-model overwrites by being read back and reapplied (§3.4).
type AlbumEmbedding struct {
	FileName  FileName  `json:"file_name"`
	Key       string    `json:"key"`
	Embedding []float32 `json:"embedding"` // len == EmbeddingDimensions
}

// EmbeddingDimensions is the fixed vector width used by the album_idx
// flat float32 index (§6).
const EmbeddingDimensions = 1536
