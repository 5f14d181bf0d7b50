// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package files

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid"

	"github.com/tomtom215/lute-crawl/internal/cache"
	"github.com/tomtom215/lute-crawl/internal/eventbus"
	"github.com/tomtom215/lute-crawl/internal/models"
)

// freshnessCacheCapacity bounds the in-process LastSavedAt cache that
// fronts IsFileStale. It trades a little memory for skipping a metadata
// round trip on files re-checked within the same TTL window - crawl
// schedulers tend to re-ask about the same chart/artist pages often.
const freshnessCacheCapacity = 50000

// TTLDays maps a page type to its staleness window, in days (§4.3).
type TTLDays struct {
	Album             int
	Artist            int
	Chart             int
	AlbumSearchResult int
}

func (t TTLDays) forPageType(pt models.PageType) int {
	switch pt {
	case models.PageTypeArtist:
		return t.Artist
	case models.PageTypeChart:
		return t.Chart
	case models.PageTypeAlbumSearchResult:
		return t.AlbumSearchResult
	default:
		return t.Album
	}
}

// Interactor is the sole entry point for file ingestion (§4.3): it owns
// the content store, the metadata repository, and event publication, so
// every caller sees put/delete as a single atomic-looking operation.
type Interactor struct {
	content  *ContentStore
	metadata *MetadataRepository
	bus      *eventbus.Bus
	ttl      TTLDays
	fresh    *cache.LRUCache
}

// NewInteractor wires the file ingestion surface.
func NewInteractor(content *ContentStore, metadata *MetadataRepository, bus *eventbus.Bus, ttl TTLDays) *Interactor {
	return &Interactor{
		content:  content,
		metadata: metadata,
		bus:      bus,
		ttl:      ttl,
		fresh:    cache.NewLRUCache(freshnessCacheCapacity, 5*time.Minute),
	}
}

// IsFileStale reports whether fileName needs recrawling: true if it has
// never been saved, or if its last save exceeds its page type's TTL. A
// fresh positive result (not stale) is cached by LastSavedAt so a burst
// of re-checks against the same file name within one TTL window doesn't
// all round-trip to the metadata store.
func (it *Interactor) IsFileStale(ctx context.Context, fileName models.FileName) (bool, error) {
	ttlDays := it.ttl.forPageType(fileName.PageType())
	now := time.Now().UTC()

	if lastSavedAt, ok := it.fresh.Get(fileName.String()); ok {
		if !(&models.FileMetadata{LastSavedAt: lastSavedAt}).IsStale(now, ttlDays) {
			return false, nil
		}
	}

	meta, err := it.metadata.FindByName(ctx, fileName)
	if err != nil {
		return false, err
	}
	if meta == nil {
		return true, nil
	}
	if meta.IsStale(now, ttlDays) {
		return true, nil
	}
	it.fresh.Add(fileName.String(), meta.LastSavedAt)
	return false, nil
}

// PutFileMetadata upserts metadata and publishes FileSaved.
func (it *Interactor) PutFileMetadata(ctx context.Context, fileName models.FileName, correlationID *string) (*models.FileMetadata, error) {
	meta, err := it.metadata.Upsert(ctx, fileName)
	if err != nil {
		return nil, err
	}
	return meta, it.publishFileSaved(ctx, meta, fileName, correlationID)
}

// PutFile stores content and then upserts metadata/publishes FileSaved.
// The file id is decided before the content write, so the content-store
// key (file id) and the metadata record agree even on first save.
func (it *Interactor) PutFile(ctx context.Context, fileName models.FileName, content []byte, correlationID *string) (*models.FileMetadata, error) {
	existing, err := it.metadata.FindByName(ctx, fileName)
	if err != nil {
		return nil, err
	}
	fileID := ulid.Make()
	if existing != nil {
		fileID = existing.ID
	}

	if err := it.content.Put(fileID, content); err != nil {
		return nil, err
	}

	meta, err := it.metadata.UpsertWithID(ctx, fileName, fileID)
	if err != nil {
		return nil, err
	}
	return meta, it.publishFileSaved(ctx, meta, fileName, correlationID)
}

func (it *Interactor) publishFileSaved(ctx context.Context, meta *models.FileMetadata, fileName models.FileName, correlationID *string) error {
	it.fresh.Add(fileName.String(), meta.LastSavedAt)
	payload := models.EventPayload{
		Event: models.Event{
			Type:     models.EventTypeFileSaved,
			FileID:   meta.ID,
			FileName: fileName,
		},
		CorrelationID: correlationID,
	}
	return it.bus.Publish(ctx, models.StreamFile, payload)
}

// ListFiles returns every file name with saved metadata, sorted for
// deterministic iteration.
func (it *Interactor) ListFiles(ctx context.Context) ([]models.FileName, error) {
	all, err := it.metadata.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]models.FileName, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names, nil
}

// GetFileMetadata returns a file's metadata, failing with ErrNotFound if
// it has never been saved.
func (it *Interactor) GetFileMetadata(ctx context.Context, fileName models.FileName) (*models.FileMetadata, error) {
	meta, err := it.metadata.FindByName(ctx, fileName)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: file metadata for %q", models.ErrNotFound, fileName)
	}
	return meta, nil
}

// DeleteFile removes a file's metadata and content, then publishes
// FileDeleted.
func (it *Interactor) DeleteFile(ctx context.Context, fileName models.FileName) error {
	meta, err := it.GetFileMetadata(ctx, fileName)
	if err != nil {
		return err
	}
	if err := it.metadata.Delete(ctx, fileName); err != nil {
		return err
	}
	if err := it.content.Delete(meta.ID); err != nil {
		return err
	}
	it.fresh.Remove(fileName.String())

	payload := models.EventPayload{
		Event: models.Event{
			Type:     models.EventTypeFileDeleted,
			FileID:   meta.ID,
			FileName: fileName,
		},
	}
	return it.bus.Publish(ctx, models.StreamFile, payload)
}

// GetFileContent reads a file's stored content, failing with ErrNotFound
// if either the metadata or the stored content is missing.
func (it *Interactor) GetFileContent(ctx context.Context, fileName models.FileName) ([]byte, error) {
	meta, err := it.GetFileMetadata(ctx, fileName)
	if err != nil {
		return nil, err
	}
	content, ok, err := it.content.Get(meta.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: file content for %q", models.ErrNotFound, fileName)
	}
	return content, nil
}
