// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package recommend

import "github.com/tomtom215/lute-crawl/internal/models"

// BuildProfileSummary materializes the play-weighted tag histograms and
// raw numeric-axis values the quantile scorer ranks candidates against
// (§3.7), from a profile's play counts and the corresponding album read
// models.
func BuildProfileSummary(profile models.Profile, profileAlbums []models.AlbumReadModel) models.ProfileSummary {
	histograms := map[models.TagAxis]map[string]uint32{
		models.TagAxisPrimaryGenre:   {},
		models.TagAxisSecondaryGenre: {},
		models.TagAxisDescriptor:     {},
		models.TagAxisCreditTag:      {},
	}

	summary := models.ProfileSummary{
		TagHistograms:         histograms,
		RatingValues:          make([]float32, 0, len(profileAlbums)),
		RatingCountValues:     make([]uint32, 0, len(profileAlbums)),
		DescriptorCountValues: make([]uint32, 0, len(profileAlbums)),
	}

	for _, album := range profileAlbums {
		plays, ok := profile.Plays[album.FileName]
		if !ok || plays == 0 {
			continue
		}
		addPlays(histograms[models.TagAxisPrimaryGenre], album.PrimaryGenres, plays)
		addPlays(histograms[models.TagAxisSecondaryGenre], album.SecondaryGenres, plays)
		addPlays(histograms[models.TagAxisDescriptor], album.Descriptors, plays)
		addPlays(histograms[models.TagAxisCreditTag], (&album).CreditTags(), plays)

		summary.RatingValues = append(summary.RatingValues, album.Rating)
		summary.RatingCountValues = append(summary.RatingCountValues, album.RatingCount)
		summary.DescriptorCountValues = append(summary.DescriptorCountValues, uint32(len(album.Descriptors)))
	}

	return summary
}

func addPlays(histogram map[string]uint32, values []string, plays uint32) {
	for _, v := range values {
		histogram[v] += plays
	}
}
