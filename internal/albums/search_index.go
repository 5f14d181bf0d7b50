// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package albums

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/store"
	"github.com/tomtom215/lute-crawl/internal/store/storekeys"
)

// SearchIndex is the RediSearch-backed document store for album read
// models (§4.5), grounded on
// original_source/core/src/albums/redis_album_search_index.rs.
type SearchIndex struct {
	store *store.Store
}

// NewSearchIndex constructs a SearchIndex over the given store.
func NewSearchIndex(s *store.Store) *SearchIndex {
	return &SearchIndex{store: s}
}

func redisKey(fileName models.FileName) string {
	return storekeys.Album(fileName.String())
}

// SetupIndex creates the album_idx FT index if it does not already exist.
func (s *SearchIndex) SetupIndex(ctx context.Context) error {
	if s.store.FTIndexExists(ctx, storekeys.AlbumIndexName) {
		return nil
	}
	args := []interface{}{
		"ON", "JSON", "PREFIX", "1", storekeys.AlbumNamespace + ":",
		"SCHEMA",
		"$.name", "AS", "name", "TEXT",
		"$.file_name", "AS", "file_name", "TAG",
		"$.artists[*].name", "AS", "artist_name", "TEXT",
		"$.artists[*].file_name", "AS", "artist_file_name", "TAG",
		"$.rating", "AS", "rating", "NUMERIC",
		"$.rating_count", "AS", "rating_count", "NUMERIC",
		"$.primary_genres.*", "AS", "primary_genre", "TAG",
		"$.primary_genre_count", "AS", "primary_genre_count", "NUMERIC",
		"$.secondary_genres.*", "AS", "secondary_genre", "TAG",
		"$.secondary_genre_count", "AS", "secondary_genre_count", "NUMERIC",
		"$.descriptors.*", "AS", "descriptor", "TAG",
		"$.descriptor_count", "AS", "descriptor_count", "NUMERIC",
		"$.release_year", "AS", "release_year", "NUMERIC",
		"$.languages.*", "AS", "language", "TAG",
		"$.language_count", "AS", "language_count", "NUMERIC",
		"$.embeddings.*.key", "AS", "embedding_key", "TAG",
		"$.embeddings.*.embedding", "AS", "embedding", "VECTOR", "FLAT", "6",
		"TYPE", "FLOAT32", "DIM", strconv.Itoa(models.EmbeddingDimensions), "DISTANCE_METRIC", "COSINE",
		"$.is_duplicate", "AS", "is_duplicate", "NUMERIC",
		"$.name_tag", "AS", "name_tag", "TAG",
	}
	if err := s.store.FTCreate(ctx, storekeys.AlbumIndexName, args...); err != nil {
		return fmt.Errorf("%w: create album index: %v", models.ErrStore, err)
	}
	return nil
}

// Put upserts the album document, preserving any embeddings already
// stored under the file name (§3.4: embeddings survive read-model
// overwrites by being read back and reapplied).
func (s *SearchIndex) Put(ctx context.Context, album models.AlbumReadModel) error {
	existingEmbeddings, err := s.GetEmbeddings(ctx, album.FileName)
	if err != nil {
		return err
	}
	embMap := make(map[string]models.AlbumEmbedding, len(existingEmbeddings))
	for _, e := range existingEmbeddings {
		embMap[e.Key] = e
	}

	wire := toWireModel(album, embMap)
	payload, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("%w: marshal album: %v", models.ErrStore, err)
	}
	return s.store.JSONSet(ctx, redisKey(album.FileName), "$", string(payload))
}

// Delete removes an album document entirely.
func (s *SearchIndex) Delete(ctx context.Context, fileName models.FileName) error {
	if err := s.store.Client().Del(ctx, redisKey(fileName)).Err(); err != nil {
		return fmt.Errorf("%w: delete album: %v", models.ErrStore, err)
	}
	return nil
}

// Find returns an album by file name, or (nil, nil) if absent.
func (s *SearchIndex) Find(ctx context.Context, fileName models.FileName) (*models.AlbumReadModel, error) {
	raw, ok, err := s.store.JSONGet(ctx, redisKey(fileName), "$")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	wire, err := decodeWireModel(raw)
	if err != nil {
		return nil, err
	}
	album := wire.toReadModel()
	return &album, nil
}

// GetMany batches Find across multiple file names via JSON.MGET,
// skipping any that don't exist.
func (s *SearchIndex) GetMany(ctx context.Context, fileNames []models.FileName) ([]models.AlbumReadModel, error) {
	if len(fileNames) == 0 {
		return nil, nil
	}
	keys := make([]string, len(fileNames))
	for i, fn := range fileNames {
		keys[i] = redisKey(fn)
	}
	raws, err := s.store.JSONMGet(ctx, keys, "$")
	if err != nil {
		return nil, err
	}
	out := make([]models.AlbumReadModel, 0, len(raws))
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		wire, err := decodeWireModel(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, wire.toReadModel())
	}
	return out, nil
}

// SearchResult is the Search return shape: the matched albums plus the
// total match count (which may exceed len(Albums) under pagination).
type SearchResult struct {
	Albums []models.AlbumReadModel
	Total  int
}

// Search runs a filtered FT.SEARCH query, returning full album documents.
func (s *SearchIndex) Search(ctx context.Context, query *SearchQuery, pagination *SearchPagination) (*SearchResult, error) {
	offset, limit := 0, 100000
	if pagination != nil {
		offset, limit = pagination.Offset, pagination.Limit
	}

	result, err := s.store.FTSearch(ctx, storekeys.AlbumIndexName, query.ToFTSearchQuery(),
		"RETURN", "1", "$",
		"LIMIT", offset, limit)
	if err != nil {
		return nil, err
	}

	albums := make([]models.AlbumReadModel, 0, len(result.Rows))
	for _, row := range result.Rows {
		raw, ok := row.Fields["$"]
		if !ok {
			continue
		}
		wire, err := decodeWireModel(raw)
		if err != nil {
			continue
		}
		albums = append(albums, wire.toReadModel())
	}
	return &SearchResult{Albums: albums, Total: result.Total}, nil
}

// FindArtistAlbums returns every album crediting any of the given artist
// file names, used by duplicate reconciliation (§4.5).
func (s *SearchIndex) FindArtistAlbums(ctx context.Context, artistFileNames []models.FileName) ([]models.AlbumReadModel, error) {
	if len(artistFileNames) == 0 {
		return nil, nil
	}
	names := make([]string, len(artistFileNames))
	for i, fn := range artistFileNames {
		names[i] = fn.String()
	}
	query := &SearchQuery{IncludeArtists: names, IncludeDuplicates: true}
	result, err := s.Search(ctx, query, &SearchPagination{Offset: 0, Limit: 100000})
	if err != nil {
		return nil, err
	}
	return result.Albums, nil
}

func decodeWireModel(raw string) (wireReadModel, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var arr []wireReadModel
		if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
			return wireReadModel{}, fmt.Errorf("%w: unmarshal album: %v", models.ErrStore, err)
		}
		if len(arr) == 0 {
			return wireReadModel{}, fmt.Errorf("%w: empty album array", models.ErrStore)
		}
		return arr[0], nil
	}
	var wire wireReadModel
	if err := json.Unmarshal([]byte(trimmed), &wire); err != nil {
		return wireReadModel{}, fmt.Errorf("%w: unmarshal album: %v", models.ErrStore, err)
	}
	return wire, nil
}

// PutEmbedding stores a named embedding sub-document for an album.
func (s *SearchIndex) PutEmbedding(ctx context.Context, embedding models.AlbumEmbedding) error {
	album, err := s.Find(ctx, embedding.FileName)
	if err != nil {
		return err
	}
	if album == nil {
		return fmt.Errorf("%w: album %q", models.ErrNotFound, embedding.FileName)
	}
	payload, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("%w: marshal embedding: %v", models.ErrStore, err)
	}
	path := fmt.Sprintf("$.embeddings.%s", embedding.Key)
	return s.store.JSONSet(ctx, redisKey(embedding.FileName), path, string(payload))
}

// GetEmbeddings returns every embedding stored on an album.
func (s *SearchIndex) GetEmbeddings(ctx context.Context, fileName models.FileName) ([]models.AlbumEmbedding, error) {
	raw, ok, err := s.store.JSONGet(ctx, redisKey(fileName), "$.embeddings")
	if err != nil || !ok {
		return nil, err
	}
	var container []map[string]models.AlbumEmbedding
	if err := json.Unmarshal([]byte(raw), &container); err != nil {
		return nil, nil // absent/empty object, no embeddings yet
	}
	var out []models.AlbumEmbedding
	for _, m := range container {
		for _, e := range m {
			out = append(out, e)
		}
	}
	return out, nil
}

// FindEmbedding returns a single named embedding, or (nil, nil) if absent.
func (s *SearchIndex) FindEmbedding(ctx context.Context, fileName models.FileName, key string) (*models.AlbumEmbedding, error) {
	path := fmt.Sprintf("$.embeddings.%s", key)
	raw, ok, err := s.store.JSONGet(ctx, redisKey(fileName), path)
	if err != nil || !ok {
		return nil, err
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "[]" || trimmed == "{}" {
		return nil, nil
	}
	var arr []models.AlbumEmbedding
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil && len(arr) > 0 {
		return &arr[0], nil
	}
	var e models.AlbumEmbedding
	if err := json.Unmarshal([]byte(trimmed), &e); err != nil {
		return nil, nil
	}
	return &e, nil
}

// FindManyEmbeddings returns the embedding under key for each file name
// that has one, via JSON.MGET.
func (s *SearchIndex) FindManyEmbeddings(ctx context.Context, fileNames []models.FileName, key string) ([]models.AlbumEmbedding, error) {
	if len(fileNames) == 0 {
		return nil, nil
	}
	keys := make([]string, len(fileNames))
	for i, fn := range fileNames {
		keys[i] = redisKey(fn)
	}
	path := fmt.Sprintf("$.embeddings.%s", key)
	raws, err := s.store.JSONMGet(ctx, keys, path)
	if err != nil {
		return nil, err
	}
	var out []models.AlbumEmbedding
	for _, raw := range raws {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		var arr []models.AlbumEmbedding
		if err := json.Unmarshal([]byte(trimmed), &arr); err == nil && len(arr) > 0 {
			out = append(out, arr[0])
		}
	}
	return out, nil
}

// DeleteEmbedding removes a single named embedding.
func (s *SearchIndex) DeleteEmbedding(ctx context.Context, fileName models.FileName, key string) error {
	path := fmt.Sprintf("$.embeddings.%s", key)
	return s.store.JSONDel(ctx, redisKey(fileName), path)
}

// embeddingToBytes packs a float32 vector as little-endian bytes, the
// wire format RediSearch's KNN vector param expects.
func embeddingToBytes(embedding []float32) []byte {
	buf := make([]byte, 4*len(embedding))
	for i, f := range embedding {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// EmbeddingSimilaritySearch runs a KNN vector search and returns matched
// albums paired with their distance, ascending.
func (s *SearchIndex) EmbeddingSimilaritySearch(ctx context.Context, query *EmbeddingSimilaritySearchQuery) ([]AlbumWithDistance, error) {
	blob := embeddingToBytes(query.Embedding)
	result, err := s.store.FTSearch(ctx, storekeys.AlbumIndexName, query.ToFTSearchQuery(),
		"RETURN", "2", "$", "distance",
		"PARAMS", "2", "BLOB", blob,
		"DIALECT", "2",
		"LIMIT", "0", strconv.Itoa(query.Limit),
		"SORTBY", "distance", "ASC")
	if err != nil {
		return nil, err
	}

	out := make([]AlbumWithDistance, 0, len(result.Rows))
	for _, row := range result.Rows {
		distanceStr, ok := row.Fields["distance"]
		if !ok {
			continue
		}
		distance, err := strconv.ParseFloat(distanceStr, 32)
		if err != nil {
			continue
		}
		raw, ok := row.Fields["$"]
		if !ok {
			continue
		}
		wire, err := decodeWireModel(raw)
		if err != nil {
			continue
		}
		out = append(out, AlbumWithDistance{Album: wire.toReadModel(), Distance: float32(distance)})
	}
	return out, nil
}

// AlbumWithDistance pairs a matched album with its KNN vector distance.
type AlbumWithDistance struct {
	Album    models.AlbumReadModel
	Distance float32
}

// GetEmbeddingKeys returns the distinct embedding source keys observed
// across every indexed album, via FT.TAGVALS.
func (s *SearchIndex) GetEmbeddingKeys(ctx context.Context) ([]string, error) {
	return s.store.FTTagVals(ctx, storekeys.AlbumIndexName, "embedding_key")
}
