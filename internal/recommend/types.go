// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package recommend

import "github.com/tomtom215/lute-crawl/internal/models"

// AssessmentSettings are the per-axis weights applied in scoring (§4.7),
// sourced from config.RecommendWeights.
type AssessmentSettings struct {
	PrimaryGenreWeight    int
	SecondaryGenreWeight  int
	DescriptorWeight      int
	RatingWeight          int
	RatingCountWeight     int
	DescriptorCountWeight int
	CreditTagWeight       int
	NoveltyScore          float64
}

// RecommendationSettings bounds a Recommend call.
type RecommendationSettings struct {
	Count int
}

// Assessment is a candidate's scored fitness against a profile.
type Assessment struct {
	Score    float32
	Metadata map[string]string
}

// Recommendation pairs an album with its Assessment.
type Recommendation struct {
	Album      models.AlbumReadModel
	Assessment Assessment
}

// ErrNotEnoughDescriptors is returned by AsAssessable when an album fails
// the assessable precondition (§4.7: |descriptors| >= 5).
var ErrNotEnoughDescriptors = models.ErrPrecondition

// AssessableAlbum is an album that has passed the assessable precondition.
type AssessableAlbum struct {
	album models.AlbumReadModel
}

// AsAssessable validates the assessable precondition, wrapping it if it
// holds.
func AsAssessable(album models.AlbumReadModel) (AssessableAlbum, error) {
	if len(album.Descriptors) < 5 {
		return AssessableAlbum{}, ErrNotEnoughDescriptors
	}
	return AssessableAlbum{album: album}, nil
}

func (a AssessableAlbum) Album() models.AlbumReadModel {
	return a.album
}
