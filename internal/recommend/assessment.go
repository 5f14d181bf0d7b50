// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package recommend

import (
	"github.com/tomtom215/lute-crawl/internal/models"
)

var tagAxes = []models.TagAxis{
	models.TagAxisPrimaryGenre,
	models.TagAxisSecondaryGenre,
	models.TagAxisDescriptor,
	models.TagAxisCreditTag,
}

func axisValues(album models.AlbumReadModel, axis models.TagAxis) []string {
	switch axis {
	case models.TagAxisPrimaryGenre:
		return album.PrimaryGenres
	case models.TagAxisSecondaryGenre:
		return album.SecondaryGenres
	case models.TagAxisDescriptor:
		return album.Descriptors
	case models.TagAxisCreditTag:
		return (&album).CreditTags()
	default:
		return nil
	}
}

func axisWeight(settings AssessmentSettings, axis models.TagAxis) float64 {
	switch axis {
	case models.TagAxisPrimaryGenre:
		return float64(settings.PrimaryGenreWeight)
	case models.TagAxisSecondaryGenre:
		return float64(settings.SecondaryGenreWeight)
	case models.TagAxisDescriptor:
		return float64(settings.DescriptorWeight)
	case models.TagAxisCreditTag:
		return float64(settings.CreditTagWeight)
	default:
		return 0
	}
}

// overlapScore sums the profile's play-weighted frequency for every tag
// value an album carries on one axis (§4.7).
func overlapScore(histogram map[string]uint32, values []string) float64 {
	var total float64
	for _, v := range values {
		total += float64(histogram[v])
	}
	return total
}

// quantileRank returns the fraction of values that are <= candidate, the
// candidate's position in [0,1] over the distribution (§4.7). An empty
// distribution has no meaningful position, so it returns the neutral
// midpoint rather than favoring or penalizing the candidate.
func quantileRank(values []float64, candidate float64) float64 {
	if len(values) == 0 {
		return 0.5
	}
	var atOrBelow int
	for _, v := range values {
		if v <= candidate {
			atOrBelow++
		}
	}
	return float64(atOrBelow) / float64(len(values))
}

// AssessmentContext holds a profile's materialized distributions so many
// candidate albums can be scored against it without recomputing them
// each time (§4.7), grounded on
// original_source/core/src/recommendations/quantile_ranking/quantile_rank_interactor.rs's
// QuantileRankAlbumAssessmentContext.
type AssessmentContext struct {
	settings            AssessmentSettings
	histograms          map[models.TagAxis]map[string]uint32
	axisOverlapDist     map[models.TagAxis][]float64
	ratingDist          []float64
	ratingCountDist     []float64
	descriptorCountDist []float64
}

// NewAssessmentContext materializes a profile's distributions once, for
// repeated Assess calls across a candidate pool.
func NewAssessmentContext(profile models.Profile, profileAlbums []models.AlbumReadModel, settings AssessmentSettings) *AssessmentContext {
	summary := BuildProfileSummary(profile, profileAlbums)

	ctx := &AssessmentContext{
		settings:        settings,
		histograms:      summary.TagHistograms,
		axisOverlapDist: make(map[models.TagAxis][]float64, len(tagAxes)),
	}

	for _, rv := range summary.RatingValues {
		ctx.ratingDist = append(ctx.ratingDist, float64(rv))
	}
	for _, rc := range summary.RatingCountValues {
		ctx.ratingCountDist = append(ctx.ratingCountDist, float64(rc))
	}
	for _, dc := range summary.DescriptorCountValues {
		ctx.descriptorCountDist = append(ctx.descriptorCountDist, float64(dc))
	}

	for _, axis := range tagAxes {
		histogram := ctx.histograms[axis]
		var dist []float64
		for _, album := range profileAlbums {
			plays, ok := profile.Plays[album.FileName]
			if !ok || plays == 0 {
				continue
			}
			dist = append(dist, overlapScore(histogram, axisValues(album, axis)))
		}
		ctx.axisOverlapDist[axis] = dist
	}

	return ctx
}

// Assess scores one assessable album against the profile's distributions
// (§4.7): a weighted mean of quantile ranks across the four tag axes
// (damped by NoveltyScore when overlap is zero) plus rating,
// rating_count, and descriptor_count.
func (c *AssessmentContext) Assess(album AssessableAlbum) Assessment {
	a := album.Album()

	var weightedSum, totalWeight float64

	for _, axis := range tagAxes {
		weight := axisWeight(c.settings, axis)
		if weight == 0 {
			continue
		}
		overlap := overlapScore(c.histograms[axis], axisValues(a, axis))
		rank := quantileRank(c.axisOverlapDist[axis], overlap)
		if overlap == 0 {
			rank *= c.settings.NoveltyScore
		}
		weightedSum += rank * weight
		totalWeight += weight
	}

	if w := float64(c.settings.RatingWeight); w > 0 {
		weightedSum += quantileRank(c.ratingDist, float64(a.Rating)) * w
		totalWeight += w
	}
	if w := float64(c.settings.RatingCountWeight); w > 0 {
		weightedSum += quantileRank(c.ratingCountDist, float64(a.RatingCount)) * w
		totalWeight += w
	}
	if w := float64(c.settings.DescriptorCountWeight); w > 0 {
		weightedSum += quantileRank(c.descriptorCountDist, float64(len(a.Descriptors))) * w
		totalWeight += w
	}

	var score float64
	if totalWeight > 0 {
		score = weightedSum / totalWeight
	}

	return Assessment{Score: float32(score)}
}
