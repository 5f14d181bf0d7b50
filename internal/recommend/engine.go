// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lute-crawl/internal/albums"
	"github.com/tomtom215/lute-crawl/internal/models"
)

// recommendCandidatePoolLimit bounds how many novel candidates a single
// Recommend call pulls from the search index before assessment.
const recommendCandidatePoolLimit = 5000

// SearchIndex is the subset of *albums.SearchIndex the engine needs to
// find novel candidates, narrowed so tests can fake it.
type SearchIndex interface {
	Search(ctx context.Context, query *albums.SearchQuery, pagination *albums.SearchPagination) (*albums.SearchResult, error)
}

// Engine is the Quantile-Rank Recommendation Engine (§4.7): the
// Engine/DataProvider separation and zerolog.Logger field are kept from
// the teacher's multi-algorithm ensemble engine, with the
// trained/versioned algorithm registry dropped since quantile-rank is a
// single deterministic scoring formula, not a trainable model.
type Engine struct {
	index SearchIndex
	log   zerolog.Logger
}

// NewEngine constructs an Engine over the given search index.
func NewEngine(index SearchIndex, log zerolog.Logger) *Engine {
	return &Engine{index: index, log: log}
}

// Recommend derives a novel-candidate search query, assesses every
// result in parallel across a worker pool, and returns the top
// recoSettings.Count by score descending (§4.7).
func (e *Engine) Recommend(
	ctx context.Context,
	profile models.Profile,
	profileAlbums []models.AlbumReadModel,
	assessmentSettings AssessmentSettings,
	recoSettings RecommendationSettings,
) ([]Recommendation, error) {
	excludeNames := make([]string, 0, len(profileAlbums))
	for _, album := range profileAlbums {
		excludeNames = append(excludeNames, album.FileName.String())
	}

	query := &albums.SearchQuery{ExcludeFileNames: excludeNames}
	result, err := e.index.Search(ctx, query, &albums.SearchPagination{Offset: 0, Limit: recommendCandidatePoolLimit})
	if err != nil {
		return nil, fmt.Errorf("%w: recommend candidate search: %v", models.ErrStore, err)
	}

	assessContext := NewAssessmentContext(profile, profileAlbums, assessmentSettings)
	heap := NewBoundedMinHeap[Recommendation](recoSettings.Count, func(r Recommendation) float32 {
		return r.Assessment.Score
	})

	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > len(result.Albums) && len(result.Albums) > 0 {
		numWorkers = len(result.Albums)
	}

	jobs := make(chan models.AlbumReadModel)
	results := make(chan Recommendation)

	var workers sync.WaitGroup
	workers.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer workers.Done()
			for album := range jobs {
				assessable, err := AsAssessable(album)
				if err != nil {
					e.log.Warn().Err(err).Str("file_name", album.FileName.String()).Msg("skipping unassessable candidate")
					continue
				}
				results <- Recommendation{Album: album, Assessment: assessContext.Assess(assessable)}
			}
		}()
	}

	go func() {
		workers.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, album := range result.Albums {
			select {
			case jobs <- album:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Single receiver: the heap is never touched concurrently, so it
	// needs no locking of its own against this call (BoundedMinHeap's
	// internal mutex only guards against a caller sharing one instance
	// across calls).
	for rec := range results {
		heap.Push(rec)
	}

	return heap.DrainSortedDesc(), nil
}
