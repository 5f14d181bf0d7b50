// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package eventbus

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/store/storekeys"
)

func (b *Bus) cursorKey(sub Subscriber) string {
	return storekeys.EventCursor(sub.Stream.Tag(), sub.ID)
}

// getCursor returns the number of list elements already consumed by sub.
func (b *Bus) getCursor(ctx context.Context, sub Subscriber) (int64, error) {
	val, err := b.store.Client().Get(ctx, b.cursorKey(sub)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get cursor: %v", models.ErrStore, err)
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed cursor %q: %v", models.ErrStore, val, err)
	}
	return n, nil
}

func (b *Bus) setCursor(ctx context.Context, sub Subscriber, cursor int64) error {
	if err := b.store.Client().Set(ctx, b.cursorKey(sub), cursor, 0).Err(); err != nil {
		return fmt.Errorf("%w: set cursor: %v", models.ErrStore, err)
	}
	return nil
}

// batchEntry pairs a decoded payload with its outcome.
type batchEntry struct {
	payload models.EventPayload
	err     error
}

// RunOnce fetches and dispatches at most one batch for sub, returning the
// number of list entries fetched (regardless of how many succeeded).
func (b *Bus) RunOnce(ctx context.Context, sub Subscriber, log zerolog.Logger) (int, error) {
	cursor, err := b.getCursor(ctx, sub)
	if err != nil {
		return 0, err
	}

	raws, err := b.store.Client().LRange(ctx, sub.Stream.RedisKey(), cursor, cursor+sub.BatchSize-1).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: lrange %s: %v", models.ErrStore, sub.Stream.RedisKey(), err)
	}
	if len(raws) == 0 {
		return 0, nil
	}

	entries := make([]*batchEntry, len(raws))
	for i, raw := range raws {
		payload, decodeErr := decodeEntry(raw)
		entries[i] = &batchEntry{payload: payload, err: decodeErr}
	}

	b.dispatch(ctx, sub, entries)

	// Advance the cursor only past the longest contiguous success prefix,
	// so a failure (or an unresolved ordering-group member) never lets a
	// later event's success skip past it - this is what makes ordering
	// hold across batches, not just within one (§9 open question).
	advanced := 0
	for _, e := range entries {
		if e.err != nil {
			break
		}
		advanced++
	}
	if advanced > 0 {
		if err := b.setCursor(ctx, sub, cursor+int64(advanced)); err != nil {
			return len(entries), err
		}
	}
	for _, e := range entries {
		if e.err != nil {
			log.Error().Err(e.err).Str("subscriber", sub.ID).Msg("event handler failed, cursor will not advance past it")
		}
	}
	return len(entries), nil
}

// dispatch runs each ordering group sequentially in its own goroutine,
// while distinct groups (and nil-keyed singleton events) run concurrently,
// per §4.2/§8 invariant 10.
func (b *Bus) dispatch(ctx context.Context, sub Subscriber, entries []*batchEntry) {
	groups := make(map[string][]int)
	var order []string

	for i, e := range entries {
		if e.err != nil {
			continue // already failed to decode; nothing to dispatch
		}
		key := fmt.Sprintf("__singleton__:%d", i)
		if sub.OrderingGroupFunc != nil {
			if gk := sub.OrderingGroupFunc(e.payload); gk != nil {
				key = "group:" + *gk
			}
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var wg sync.WaitGroup
	for _, key := range order {
		indices := groups[key]
		wg.Add(1)
		go func(indices []int) {
			defer wg.Done()
			failed := false
			for _, i := range indices {
				entry := entries[i]
				if failed {
					entry.err = fmt.Errorf("skipped: earlier event in ordering group failed")
					continue
				}
				if err := sub.Handler(ctx, entry.payload); err != nil {
					entry.err = fmt.Errorf("handler: %w", err)
					failed = true
				}
			}
		}(indices)
	}
	wg.Wait()
}

// Run polls RunOnce on an interval until ctx is cancelled.
func (b *Bus) Run(ctx context.Context, sub Subscriber, pollInterval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := b.RunOnce(ctx, sub, log); err != nil {
				log.Error().Err(err).Str("subscriber", sub.ID).Msg("event batch run failed")
			}
		}
	}
}
