// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package eventbus

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/store"
)

// Bus publishes EventPayloads onto a stream's append-only log (§3.6, §6).
// Each stream is a Redis list under event:stream:<tag>; RPush appends,
// LRange with an integer cursor reads forward from where a subscriber
// last stopped.
type Bus struct {
	store *store.Store
}

// New constructs a Bus over the given store.
func New(s *store.Store) *Bus {
	return &Bus{store: s}
}

// wireEntry is the on-the-wire shape of one list element, matching §6:
// "fields {event: JSON, correlation_id?, metadata: JSON}".
type wireEntry struct {
	Event         string `json:"event"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Metadata      string `json:"metadata,omitempty"`
}

// Publish appends an event payload onto the named stream.
func (b *Bus) Publish(ctx context.Context, stream models.Stream, payload models.EventPayload) error {
	eventJSON, err := json.Marshal(payload.Event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", models.ErrStore, err)
	}
	metadataJSON, err := json.Marshal(payload.Metadata)
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %v", models.ErrStore, err)
	}
	we := wireEntry{Event: string(eventJSON), Metadata: string(metadataJSON)}
	if payload.CorrelationID != nil {
		we.CorrelationID = *payload.CorrelationID
	}

	raw, err := json.Marshal(we)
	if err != nil {
		return fmt.Errorf("%w: marshal wire entry: %v", models.ErrStore, err)
	}

	if err := b.store.Client().RPush(ctx, stream.RedisKey(), string(raw)).Err(); err != nil {
		return fmt.Errorf("%w: rpush %s: %v", models.ErrStore, stream.RedisKey(), err)
	}
	return nil
}

// decodeEntry reconstructs an EventPayload from one list element.
func decodeEntry(raw string) (models.EventPayload, error) {
	var we wireEntry
	if err := json.Unmarshal([]byte(raw), &we); err != nil {
		return models.EventPayload{}, fmt.Errorf("%w: unmarshal wire entry: %v", models.ErrStore, err)
	}

	var event models.Event
	if err := json.Unmarshal([]byte(we.Event), &event); err != nil {
		return models.EventPayload{}, fmt.Errorf("%w: unmarshal event: %v", models.ErrStore, err)
	}

	payload := models.EventPayload{Event: event}
	if we.CorrelationID != "" {
		cid := we.CorrelationID
		payload.CorrelationID = &cid
	}
	if we.Metadata != "" && we.Metadata != "null" {
		var metadata map[string]string
		if err := json.Unmarshal([]byte(we.Metadata), &metadata); err != nil {
			return models.EventPayload{}, fmt.Errorf("%w: unmarshal metadata: %v", models.ErrStore, err)
		}
		payload.Metadata = metadata
	}
	return payload, nil
}
