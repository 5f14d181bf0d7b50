// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/store"
	"github.com/tomtom215/lute-crawl/internal/store/storekeys"
)

// Queue is the bounded, deduplicated priority crawl queue (§4.1). push_lock
// and claim_lock are process-local advisory locks layered over the
// store-level atomic transactions: they keep concurrent goroutines in this
// process from racing the full-check-then-push or scan-then-claim sequence
// against each other, but correctness across processes still rests on the
// underlying Redis transactions.
type Queue struct {
	store     *store.Store
	maxSize   int
	claimTTL  time.Duration
	log       zerolog.Logger
	pushLock  sync.Mutex
	claimLock sync.Mutex
}

// New constructs a Queue bound to the crawler:queue key family.
func New(s *store.Store, maxSize int, claimTTL time.Duration, log zerolog.Logger) *Queue {
	return &Queue{
		store:    s,
		maxSize:  maxSize,
		claimTTL: claimTTL,
		log:      log.With().Str("component", "queue").Logger(),
	}
}

func (q *Queue) itemSetKey() string {
	return storekeys.QueueItems()
}

func (q *Queue) claimedKeyFor(itemKey string) string {
	return storekeys.QueueClaimed(itemKey)
}

// contains reports whether a deduplication key already has an item record.
func (q *Queue) contains(ctx context.Context, dedupKey string) (bool, error) {
	n, err := q.store.Client().HExists(ctx, q.itemSetKey(), dedupKey).Result()
	if err != nil {
		return false, fmt.Errorf("%w: hexists: %v", models.ErrStore, err)
	}
	return n, nil
}

// Size returns the current queue cardinality.
func (q *Queue) Size(ctx context.Context) (int64, error) {
	n, err := q.store.Client().ZCard(ctx, storekeys.QueueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: zcard: %v", models.ErrStore, err)
	}
	return n, nil
}

func (q *Queue) isFull(ctx context.Context) (bool, error) {
	size, err := q.Size(ctx)
	if err != nil {
		return false, err
	}
	return size >= int64(q.maxSize), nil
}

// Push enqueues an item, skipping silently if its deduplication key is
// already present and failing with ErrQueueFull once at capacity (§4.1,
// invariant: "a deduplication key can occupy at most one live queue slot").
func (q *Queue) Push(ctx context.Context, params models.QueuePushParams) error {
	q.pushLock.Lock()
	defer q.pushLock.Unlock()

	dedupKey := params.FileName.String()
	if params.DeduplicationKey != nil {
		dedupKey = *params.DeduplicationKey
	}

	exists, err := q.contains(ctx, dedupKey)
	if err != nil {
		return err
	}
	if exists {
		q.log.Warn().Str("dedup_key", dedupKey).Msg("item already queued, skipping")
		return nil
	}

	full, err := q.isFull(ctx)
	if err != nil {
		return err
	}
	if full {
		return fmt.Errorf("%w: queue at capacity %d", models.ErrQueueFull, q.maxSize)
	}

	priority := models.PriorityStandard
	if params.Priority != nil {
		priority = *params.Priority
	}

	itemKey := models.ItemKey{
		EnqueueTime:      time.Now().UTC(),
		DeduplicationKey: dedupKey,
	}

	record := models.QueueItemSetRecord{
		FileName:      params.FileName,
		CorrelationID: params.CorrelationID,
		Metadata:      params.Metadata,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshal queue item record: %v", models.ErrStore, err)
	}

	_, err = q.store.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, storekeys.QueueKey, redis.Z{Score: float64(priority), Member: itemKey.String()})
		pipe.HSet(ctx, q.itemSetKey(), dedupKey, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: push transaction: %v", models.ErrStore, err)
	}
	return nil
}

// GetItem hydrates a QueueItem from its ItemKey, or (nil, nil) if absent.
func (q *Queue) GetItem(ctx context.Context, key models.ItemKey) (*models.QueueItem, error) {
	raw, err := q.store.Client().HGet(ctx, q.itemSetKey(), key.DeduplicationKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: hget: %v", models.ErrStore, err)
	}

	var record models.QueueItemSetRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("%w: unmarshal queue item record: %v", models.ErrStore, err)
	}

	score, err := q.store.Client().ZScore(ctx, storekeys.QueueKey, key.String()).Result()
	priority := models.PriorityStandard
	if err == nil {
		priority, err = models.PriorityFromScore(score)
		if err != nil {
			return nil, err
		}
	} else if err != redis.Nil {
		return nil, fmt.Errorf("%w: zscore: %v", models.ErrStore, err)
	}

	return &models.QueueItem{
		ItemKey:       key,
		FileName:      record.FileName,
		Priority:      priority,
		CorrelationID: record.CorrelationID,
		Metadata:      record.Metadata,
	}, nil
}

// IsClaimed reports whether an item currently holds a claim lease.
func (q *Queue) IsClaimed(ctx context.Context, key models.ItemKey) (bool, error) {
	n, err := q.store.Client().Exists(ctx, q.claimedKeyFor(key.String())).Result()
	if err != nil {
		return false, fmt.Errorf("%w: exists: %v", models.ErrStore, err)
	}
	return n == 1, nil
}

// At returns the queue item at the given zero-based sorted-set rank, or
// (nil, nil) if the queue is shorter than position.
func (q *Queue) At(ctx context.Context, position int64) (*models.QueueItem, error) {
	members, err := q.store.Client().ZRange(ctx, storekeys.QueueKey, position, position).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: zrange: %v", models.ErrStore, err)
	}
	if len(members) == 0 {
		return nil, nil
	}
	key, err := models.ParseItemKey(members[0])
	if err != nil {
		return nil, err
	}
	return q.GetItem(ctx, key)
}

// Peek returns the head-of-queue item without claiming it.
func (q *Queue) Peek(ctx context.Context) (*models.QueueItem, error) {
	return q.At(ctx, 0)
}

// Empty clears the queue and its item records (test/admin use only).
func (q *Queue) Empty(ctx context.Context) error {
	if err := q.store.Client().Del(ctx, storekeys.QueueKey, q.itemSetKey()).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", models.ErrStore, err)
	}
	return nil
}

// GetNextUnclaimedItem linearly scans from the head of the queue for the
// first item without a live claim lease. §9's first Open Question notes
// this scan is theoretically unbounded under an adversarial claim pattern;
// it is accepted as-is per the spec, since claim leases expire and the
// queue is bounded in practice by max_size.
func (q *Queue) GetNextUnclaimedItem(ctx context.Context) (*models.QueueItem, error) {
	var index int64
	for {
		item, err := q.At(ctx, index)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, nil
		}
		claimed, err := q.IsClaimed(ctx, item.ItemKey)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return item, nil
		}
		index++
	}
}

// ClaimItem finds and leases the next unclaimed item, returning nil if the
// queue has no eligible work.
func (q *Queue) ClaimItem(ctx context.Context) (*models.QueueItem, error) {
	q.claimLock.Lock()
	defer q.claimLock.Unlock()

	item, err := q.GetNextUnclaimedItem(ctx)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if err := q.store.Client().SetEx(ctx, q.claimedKeyFor(item.ItemKey.String()), "1", q.claimTTL).Err(); err != nil {
		return nil, fmt.Errorf("%w: setex claim: %v", models.ErrStore, err)
	}
	q.log.Info().Str("item_key", item.ItemKey.String()).Msg("claimed queue item")
	return item, nil
}

// DeleteItem removes a queue item, its payload record, and any claim lease.
func (q *Queue) DeleteItem(ctx context.Context, key models.ItemKey) error {
	_, err := q.store.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, storekeys.QueueKey, key.String())
		pipe.HDel(ctx, q.itemSetKey(), key.DeduplicationKey)
		pipe.Del(ctx, q.claimedKeyFor(key.String()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: delete transaction: %v", models.ErrStore, err)
	}
	return nil
}

// GetClaimedItems returns every currently claimed item with its remaining
// lease TTL in seconds.
func (q *Queue) GetClaimedItems(ctx context.Context) ([]models.ClaimedQueueItem, error) {
	prefix := q.claimedKeyFor("")
	keys, err := q.store.Client().Keys(ctx, prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("%w: keys: %v", models.ErrStore, err)
	}

	var out []models.ClaimedQueueItem
	for _, redisKey := range keys {
		itemKeyStr := strings.TrimPrefix(redisKey, prefix)
		itemKey, err := models.ParseItemKey(itemKeyStr)
		if err != nil {
			q.log.Warn().Err(err).Str("key", redisKey).Msg("skipping malformed claim key")
			continue
		}
		item, err := q.GetItem(ctx, itemKey)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		ttl, err := q.store.Client().TTL(ctx, redisKey).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: ttl: %v", models.ErrStore, err)
		}
		out = append(out, models.ClaimedQueueItem{
			Item:            *item,
			ClaimTTLSeconds: int64(ttl.Seconds()),
		})
	}
	return out, nil
}

// GetClaimedItemCount is the cheap counting form of GetClaimedItems, added
// so callers (metrics, admin endpoints) don't pay for full hydration just
// to report a gauge.
func (q *Queue) GetClaimedItemCount(ctx context.Context) (int, error) {
	keys, err := q.store.Client().Keys(ctx, q.claimedKeyFor("")+"*").Result()
	if err != nil {
		return 0, fmt.Errorf("%w: keys: %v", models.ErrStore, err)
	}
	return len(keys), nil
}
