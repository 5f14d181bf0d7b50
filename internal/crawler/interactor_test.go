// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package crawler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomtom215/lute-crawl/internal/crawler"
	"github.com/tomtom215/lute-crawl/internal/models"
)

type fakeStalenessChecker struct {
	stale bool
	err   error
}

func (f *fakeStalenessChecker) IsFileStale(_ context.Context, _ models.FileName) (bool, error) {
	return f.stale, f.err
}

type fakePusher struct {
	pushed []models.QueuePushParams
}

func (f *fakePusher) Push(_ context.Context, params models.QueuePushParams) error {
	f.pushed = append(f.pushed, params)
	return nil
}

func fn(t *testing.T, s string) models.FileName {
	t.Helper()
	v, err := models.NewFileName(s)
	require.NoError(t, err)
	return v
}

func TestEnqueueIfStalePushesWhenStale(t *testing.T) {
	pusher := &fakePusher{}
	it := crawler.NewInteractor(&fakeStalenessChecker{stale: true}, pusher)

	require.NoError(t, it.EnqueueIfStale(context.Background(), models.QueuePushParams{FileName: fn(t, "album/a/a")}))
	require.Len(t, pusher.pushed, 1)
}

func TestEnqueueIfStaleSkipsWhenFresh(t *testing.T) {
	pusher := &fakePusher{}
	it := crawler.NewInteractor(&fakeStalenessChecker{stale: false}, pusher)

	require.NoError(t, it.EnqueueIfStale(context.Background(), models.QueuePushParams{FileName: fn(t, "album/a/a")}))
	require.Empty(t, pusher.pushed)
}
