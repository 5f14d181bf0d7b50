// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package eventbus

import (
	"context"

	"github.com/tomtom215/lute-crawl/internal/models"
)

// HandlerFunc processes a single event; a returned error blocks cursor
// advancement past that event (at-least-once delivery, §4.2).
type HandlerFunc func(ctx context.Context, payload models.EventPayload) error

// OrderingGroupFunc derives an optional sequencing key for an event.
// Events sharing the same non-nil key within (and across) a batch are
// processed strictly in arrival order; nil-keyed events may run
// concurrently with anything else in the batch.
type OrderingGroupFunc func(payload models.EventPayload) *string

// Subscriber is a named consumer of one stream (§4.2).
type Subscriber struct {
	ID                string
	Stream            models.Stream
	BatchSize         int64
	Handler           HandlerFunc
	OrderingGroupFunc OrderingGroupFunc // optional
}
