// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package albums

import (
	"github.com/tomtom215/lute-crawl/internal/models"
)

// wireReadModel is the document persisted at album:<file_name>: the core
// AlbumReadModel plus the derived count/tag fields the FT.CREATE schema
// indexes on (§3.3, §6). Derived fields are recomputed from the source
// slices on every Put, so they can never drift (invariant 6).
type wireReadModel struct {
	Name                 string                         `json:"name"`
	NameTag              string                         `json:"name_tag"`
	FileName             models.FileName                `json:"file_name"`
	Rating               float32                        `json:"rating"`
	RatingCount          uint32                          `json:"rating_count"`
	Artists              []models.AlbumReadModelArtist   `json:"artists"`
	ArtistCount          uint32                          `json:"artist_count"`
	PrimaryGenres        []string                        `json:"primary_genres"`
	PrimaryGenreCount    uint32                          `json:"primary_genre_count"`
	SecondaryGenres      []string                        `json:"secondary_genres"`
	SecondaryGenreCount  uint32                          `json:"secondary_genre_count"`
	Descriptors          []string                        `json:"descriptors"`
	DescriptorCount      uint32                          `json:"descriptor_count"`
	Tracks               []models.AlbumReadModelTrack    `json:"tracks"`
	ReleaseDate          *string                         `json:"release_date,omitempty"`
	ReleaseYear          *uint32                         `json:"release_year,omitempty"`
	Languages            []string                        `json:"languages"`
	LanguageCount        uint32                          `json:"language_count"`
	Credits              []models.AlbumReadModelCredit   `json:"credits"`
	CreditTags           []string                        `json:"credit_tags"`
	CreditTagCount       uint32                          `json:"credit_tag_count"`
	DuplicateOf          *models.FileName                `json:"duplicate_of,omitempty"`
	IsDuplicate          int                              `json:"is_duplicate"`
	Duplicates           []models.FileName                `json:"duplicates,omitempty"`
	CoverImageURL        *string                         `json:"cover_image_url,omitempty"`
	Embeddings           map[string]models.AlbumEmbedding `json:"embeddings,omitempty"`
}

func toWireModel(album models.AlbumReadModel, embeddings map[string]models.AlbumEmbedding) wireReadModel {
	creditTags := album.CreditTags()
	isDuplicate := 0
	if album.DuplicateOf != nil {
		isDuplicate = 1
	}
	return wireReadModel{
		Name:                album.Name,
		NameTag:             album.Name,
		FileName:            album.FileName,
		Rating:              album.Rating,
		RatingCount:         album.RatingCount,
		Artists:             album.Artists,
		ArtistCount:         uint32(len(album.Artists)),
		PrimaryGenres:       album.PrimaryGenres,
		PrimaryGenreCount:   uint32(len(album.PrimaryGenres)),
		SecondaryGenres:     album.SecondaryGenres,
		SecondaryGenreCount: uint32(len(album.SecondaryGenres)),
		Descriptors:         album.Descriptors,
		DescriptorCount:     uint32(len(album.Descriptors)),
		Tracks:              album.Tracks,
		ReleaseDate:         album.ReleaseDate,
		ReleaseYear:         album.ReleaseYear(),
		Languages:           album.Languages,
		LanguageCount:       uint32(len(album.Languages)),
		Credits:             album.Credits,
		CreditTags:          creditTags,
		CreditTagCount:      uint32(len(creditTags)),
		DuplicateOf:         album.DuplicateOf,
		IsDuplicate:         isDuplicate,
		Duplicates:          album.Duplicates,
		CoverImageURL:       album.CoverImageURL,
		Embeddings:          embeddings,
	}
}

func (w wireReadModel) toReadModel() models.AlbumReadModel {
	return models.AlbumReadModel{
		Name:            w.Name,
		FileName:        w.FileName,
		Rating:          w.Rating,
		RatingCount:     w.RatingCount,
		Artists:         w.Artists,
		PrimaryGenres:   w.PrimaryGenres,
		SecondaryGenres: w.SecondaryGenres,
		Descriptors:     w.Descriptors,
		Tracks:          w.Tracks,
		ReleaseDate:     w.ReleaseDate,
		Languages:       w.Languages,
		Credits:         w.Credits,
		DuplicateOf:     w.DuplicateOf,
		Duplicates:      w.Duplicates,
		CoverImageURL:   w.CoverImageURL,
	}
}
