// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package albums

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/lute-crawl/internal/eventbus"
	"github.com/tomtom215/lute-crawl/internal/models"
)

// Crawler is the sole surface subscribers use to enqueue discovered
// albums, satisfied structurally by *crawler.Interactor. Declared here
// rather than imported to avoid a cycle between internal/albums and
// internal/crawler.
type Crawler interface {
	EnqueueIfStale(ctx context.Context, params models.QueuePushParams) error
}

// crawlSimilarAlbumsPrefix marks a correlation ID as originating from
// similar-album discovery, which gets a lower crawl priority than
// chart/artist discovery (§4.6).
const crawlSimilarAlbumsPrefix = "crawl_similar_albums:"

func priorityFromCorrelationID(correlationID *string) models.Priority {
	if correlationID == nil {
		return models.PriorityStandard
	}
	if strings.HasPrefix(*correlationID, crawlSimilarAlbumsPrefix) {
		return models.PriorityLow
	}
	return models.PriorityStandard
}

func albumNameFromPayload(p models.EventPayload) *string {
	if p.Event.Type != models.EventTypeFileParsed || p.Event.Data == nil {
		return nil
	}
	if p.Event.Data.Type != models.ParsedDataAlbum || p.Event.Data.Album == nil {
		return nil
	}
	return &p.Event.Data.Album.Name
}

func deletedAlbumFileNameFromPayload(p models.EventPayload) *string {
	if p.Event.Type != models.EventTypeFileDeleted {
		return nil
	}
	if p.Event.FileName.PageType() != models.PageTypeAlbum {
		return nil
	}
	s := p.Event.FileName.String()
	return &s
}

// UpdateAlbumReadModelsSubscriber projects FileParsed(Album) events into
// the album read model and search index. Potential duplicates (albums
// sharing a name) are ordered by album name so they process sequentially
// and reconciliation never races against itself.
func UpdateAlbumReadModelsSubscriber(interactor *Interactor) eventbus.Subscriber {
	return eventbus.Subscriber{
		ID:                "update_album_read_models",
		Stream:            models.StreamParser,
		BatchSize:         250,
		OrderingGroupFunc: albumNameFromPayload,
		Handler: func(ctx context.Context, p models.EventPayload) error {
			if p.Event.Type != models.EventTypeFileParsed || p.Event.Data == nil || p.Event.Data.Album == nil {
				return nil
			}
			album := fromParsedAlbum(p.Event.FileName, *p.Event.Data.Album)
			return interactor.Put(ctx, album)
		},
	}
}

// DeleteAlbumReadModelsSubscriber removes album read models for
// FileDeleted events. Ordered by file name, restricted to album pages,
// so deletes of the same album never race a concurrent reconciliation.
func DeleteAlbumReadModelsSubscriber(interactor *Interactor) eventbus.Subscriber {
	return eventbus.Subscriber{
		ID:                "delete_album_read_models",
		Stream:            models.StreamFile,
		BatchSize:         250,
		OrderingGroupFunc: deletedAlbumFileNameFromPayload,
		Handler: func(ctx context.Context, p models.EventPayload) error {
			if p.Event.Type != models.EventTypeFileDeleted {
				return nil
			}
			if p.Event.FileName.PageType() != models.PageTypeAlbum {
				return nil
			}
			return interactor.Delete(ctx, p.Event.FileName)
		},
	}
}

// CrawlChartAlbumsSubscriber enqueues every album referenced by a
// crawled chart page.
func CrawlChartAlbumsSubscriber(crawler Crawler) eventbus.Subscriber {
	return eventbus.Subscriber{
		ID:        "crawl_chart_albums",
		Stream:    models.StreamParser,
		BatchSize: 250,
		Handler: func(ctx context.Context, p models.EventPayload) error {
			if p.Event.Type != models.EventTypeFileParsed || p.Event.Data == nil || p.Event.Data.Chart == nil {
				return nil
			}
			priority := priorityFromCorrelationID(p.CorrelationID)
			correlationID := fmt.Sprintf("crawl_chart_albums:%s", p.Event.FileName.String())
			for _, ref := range p.Event.Data.Chart.Albums {
				if err := crawler.EnqueueIfStale(ctx, models.QueuePushParams{
					FileName:      ref.FileName,
					Priority:      &priority,
					CorrelationID: &correlationID,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// CrawlArtistAlbumsSubscriber enqueues every album referenced by a
// crawled artist page.
func CrawlArtistAlbumsSubscriber(crawler Crawler) eventbus.Subscriber {
	return eventbus.Subscriber{
		ID:        "crawl_artist_albums",
		Stream:    models.StreamParser,
		BatchSize: 250,
		Handler: func(ctx context.Context, p models.EventPayload) error {
			if p.Event.Type != models.EventTypeFileParsed || p.Event.Data == nil || p.Event.Data.Artist == nil {
				return nil
			}
			priority := priorityFromCorrelationID(p.CorrelationID)
			correlationID := fmt.Sprintf("crawl_artist_albums:%s", p.Event.FileName.String())
			for _, ref := range p.Event.Data.Artist.Albums {
				if err := crawler.EnqueueIfStale(ctx, models.QueuePushParams{
					FileName:      ref.FileName,
					Priority:      &priority,
					CorrelationID: &correlationID,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func fromParsedAlbum(fileName models.FileName, parsed models.ParsedAlbum) models.AlbumReadModel {
	return models.AlbumReadModel{
		Name:            parsed.Name,
		FileName:        fileName,
		Rating:          parsed.Rating,
		RatingCount:     parsed.RatingCount,
		Artists:         parsed.Artists,
		PrimaryGenres:   parsed.PrimaryGenres,
		SecondaryGenres: parsed.SecondaryGenres,
		Descriptors:     parsed.Descriptors,
		Tracks:          parsed.Tracks,
		ReleaseDate:     parsed.ReleaseDate,
		Languages:       parsed.Languages,
		Credits:         parsed.Credits,
		CoverImageURL:   parsed.CoverImageURL,
	}
}
