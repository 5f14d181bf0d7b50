// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package models

// Profile is a listener's play-weighted album history (§3.7).
type Profile struct {
	Plays map[FileName]uint32 `json:"plays"`
}

// TagAxis names one of the four play-weighted distributions the
// recommender scores candidates against (§4.7).
type TagAxis string

const (
	TagAxisPrimaryGenre   TagAxis = "primary_genre"
	TagAxisSecondaryGenre TagAxis = "secondary_genre"
	TagAxisDescriptor     TagAxis = "descriptor"
	TagAxisCreditTag      TagAxis = "credit_tag"
)

// ProfileSummary is the materialized set of aggregated distributions used
// by the quantile-rank scorer (§3.7): a play-weighted histogram per tag
// axis across the profile's albums, plus overall rating/count stats.
type ProfileSummary struct {
	// TagHistograms maps axis -> tag value -> total plays across every
	// profile album carrying that value.
	TagHistograms map[TagAxis]map[string]uint32 `json:"tag_histograms"`

	// RatingValues, RatingCountValues, DescriptorCountValues are the raw
	// per-profile-album values the quantile scorer ranks a candidate
	// against on those three axes.
	RatingValues          []float32 `json:"rating_values"`
	RatingCountValues     []uint32  `json:"rating_count_values"`
	DescriptorCountValues []uint32  `json:"descriptor_count_values"`
}
