// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package crawler

import (
	"context"

	"github.com/tomtom215/lute-crawl/internal/models"
)

// StalenessChecker is the subset of *files.Interactor the crawler needs.
type StalenessChecker interface {
	IsFileStale(ctx context.Context, fileName models.FileName) (bool, error)
}

// Pusher is the subset of *queue.Queue the crawler needs.
type Pusher interface {
	Push(ctx context.Context, params models.QueuePushParams) error
}

// Interactor is the Crawler Interactor (§4.8): the sole surface by
// which event subscribers add work to the crawl queue.
type Interactor struct {
	files StalenessChecker
	queue Pusher
}

// NewInteractor wires the crawler over the file staleness checker and
// the priority queue.
func NewInteractor(files StalenessChecker, queue Pusher) *Interactor {
	return &Interactor{files: files, queue: queue}
}

// EnqueueIfStale enqueues params.FileName only if it is stale or has
// never been saved; a fresh file is a no-op.
func (it *Interactor) EnqueueIfStale(ctx context.Context, params models.QueuePushParams) error {
	stale, err := it.files.IsFileStale(ctx, params.FileName)
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}
	return it.queue.Push(ctx, params)
}
