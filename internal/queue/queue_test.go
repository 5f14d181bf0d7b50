// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/queue"
	"github.com/tomtom215/lute-crawl/internal/store"
)

func newTestQueue(t *testing.T, maxSize int, claimTTL time.Duration) *queue.Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return queue.New(store.NewFromClient(client), maxSize, claimTTL, zerolog.Nop())
}

func fileName(t *testing.T, s string) models.FileName {
	t.Helper()
	fn, err := models.NewFileName(s)
	require.NoError(t, err)
	return fn
}

func TestPushAndPeek(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 10, time.Minute)

	fn := fileName(t, "album/artist-a/album-a")
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fn}))

	item, err := q.Peek(ctx)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, fn, item.FileName)
	require.Equal(t, models.PriorityStandard, item.Priority)
}

func TestPushDeduplicatesSilently(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 10, time.Minute)

	fn := fileName(t, "album/artist-a/album-a")
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fn}))
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fn}))

	size, err := q.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, size)
}

func TestPushFailsWhenFull(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 1, time.Minute)

	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fileName(t, "album/a/a")}))
	err := q.Push(ctx, models.QueuePushParams{FileName: fileName(t, "album/b/b")})
	require.ErrorIs(t, err, models.ErrQueueFull)
}

func TestPriorityOrdering(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 10, time.Minute)

	low := models.PriorityLow
	express := models.PriorityExpress

	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fileName(t, "album/a/a"), Priority: &low}))
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fileName(t, "album/b/b"), Priority: &express}))

	item, err := q.Peek(ctx)
	require.NoError(t, err)
	require.Equal(t, fileName(t, "album/b/b"), item.FileName)
}

func TestClaimItemLeasesAndSkipsClaimed(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 10, time.Minute)

	fnA := fileName(t, "album/a/a")
	fnB := fileName(t, "album/b/b")
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fnA}))
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fnB}))

	first, err := q.ClaimItem(ctx)
	require.NoError(t, err)
	require.Equal(t, fnA, first.FileName)

	claimed, err := q.IsClaimed(ctx, first.ItemKey)
	require.NoError(t, err)
	require.True(t, claimed)

	second, err := q.ClaimItem(ctx)
	require.NoError(t, err)
	require.Equal(t, fnB, second.FileName)

	count, err := q.GetClaimedItemCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestDeleteItemRemovesEverything(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 10, time.Minute)

	fn := fileName(t, "album/a/a")
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fn}))
	item, err := q.ClaimItem(ctx)
	require.NoError(t, err)

	require.NoError(t, q.DeleteItem(ctx, item.ItemKey))

	size, err := q.Size(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, size)

	claimed, err := q.IsClaimed(ctx, item.ItemKey)
	require.NoError(t, err)
	require.False(t, claimed)
}

func TestGetClaimedItems(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t, 10, time.Minute)

	fn := fileName(t, "album/a/a")
	require.NoError(t, q.Push(ctx, models.QueuePushParams{FileName: fn}))
	_, err := q.ClaimItem(ctx)
	require.NoError(t, err)

	claimed, err := q.GetClaimedItems(ctx)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, fn, claimed[0].Item.FileName)
	require.Greater(t, claimed[0].ClaimTTLSeconds, int64(0))
}
