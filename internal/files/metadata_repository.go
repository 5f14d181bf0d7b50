// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package files

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid"

	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/store"
	"github.com/tomtom215/lute-crawl/internal/store/storekeys"
)

// MetadataRepository persists FileMetadata as RedisJSON documents.
type MetadataRepository struct {
	store *store.Store
}

// NewMetadataRepository constructs a MetadataRepository over the given store.
func NewMetadataRepository(s *store.Store) *MetadataRepository {
	return &MetadataRepository{store: s}
}

// FindByName returns a file's metadata, or (nil, nil) if it has never been
// saved.
func (r *MetadataRepository) FindByName(ctx context.Context, fileName models.FileName) (*models.FileMetadata, error) {
	raw, ok, err := r.store.JSONGet(ctx, storekeys.FileMetadata(fileName.String()), "$")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return decodeFileMetadata(raw)
}

// Upsert creates a FileMetadata on first save (assigning a new ulid), or
// refreshes LastSavedAt while preserving ID and FirstSavedAt on subsequent
// saves.
func (r *MetadataRepository) Upsert(ctx context.Context, fileName models.FileName) (*models.FileMetadata, error) {
	return r.upsert(ctx, fileName, nil)
}

// UpsertWithID behaves like Upsert, but uses newID for the id assigned on
// first save instead of generating one. Callers that must write content
// under a file id before the metadata record exists (PutFile) use this to
// keep the content-store key and the metadata id in agreement.
func (r *MetadataRepository) UpsertWithID(ctx context.Context, fileName models.FileName, newID ulid.ULID) (*models.FileMetadata, error) {
	return r.upsert(ctx, fileName, &newID)
}

func (r *MetadataRepository) upsert(ctx context.Context, fileName models.FileName, newID *ulid.ULID) (*models.FileMetadata, error) {
	existing, err := r.FindByName(ctx, fileName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var meta models.FileMetadata
	if existing != nil {
		meta = *existing
		meta.LastSavedAt = now
	} else {
		id := ulid.Make()
		if newID != nil {
			id = *newID
		}
		meta = models.FileMetadata{
			ID:           id,
			Name:         fileName,
			FirstSavedAt: now,
			LastSavedAt:  now,
		}
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal file metadata: %v", models.ErrStore, err)
	}
	if err := r.store.JSONSet(ctx, storekeys.FileMetadata(fileName.String()), "$", string(payload)); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Delete removes a file's metadata document.
func (r *MetadataRepository) Delete(ctx context.Context, fileName models.FileName) error {
	return r.store.JSONDel(ctx, storekeys.FileMetadata(fileName.String()), "$")
}

// ListAll returns every persisted FileMetadata record, used to back
// Interactor.ListFiles.
func (r *MetadataRepository) ListAll(ctx context.Context) ([]models.FileMetadata, error) {
	keys, err := r.store.Client().Keys(ctx, storekeys.FileMetadataPrefix+":*").Result()
	if err != nil {
		return nil, fmt.Errorf("%w: keys: %v", models.ErrStore, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	raws, err := r.store.JSONMGet(ctx, keys, "$")
	if err != nil {
		return nil, err
	}

	out := make([]models.FileMetadata, 0, len(raws))
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		meta, err := decodeFileMetadata(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *meta)
	}
	return out, nil
}

// decodeFileMetadata unwraps RedisJSON's "$"-path array-of-one reply shape.
func decodeFileMetadata(raw string) (*models.FileMetadata, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var arr []models.FileMetadata
		if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
			return nil, fmt.Errorf("%w: unmarshal file metadata: %v", models.ErrStore, err)
		}
		if len(arr) == 0 {
			return nil, nil
		}
		return &arr[0], nil
	}
	var meta models.FileMetadata
	if err := json.Unmarshal([]byte(trimmed), &meta); err != nil {
		return nil, fmt.Errorf("%w: unmarshal file metadata: %v", models.ErrStore, err)
	}
	return &meta, nil
}
