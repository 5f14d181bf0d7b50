// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package main is the entry point for the Lute-crawl server.
//
// Lute-crawl ingests crawled music-catalog pages, derives typed album
// read models from them, and serves quantile-rank recommendations
// against a listener's play history. The process wires four pieces
// under one suture supervisor tree (internal/supervisor):
//
//  1. Ingestion: a BadgerDB content store plus a Redis-backed metadata
//     repository (internal/files), publishing FileSaved/FileDeleted.
//  2. Workers: one poll loop per event-bus subscriber - album read-model
//     projection, crawl-chart/artist follow-up enqueueing, and parser
//     dispatch (internal/albums, internal/parser) - plus the crawl
//     queue's claim loop (internal/queue).
//  3. Search and recommendation: a RediSearch-backed album index
//     (internal/albums) and the quantile-rank engine (internal/recommend).
//  4. API: a chi router exposing file, search, and recommend endpoints
//     (internal/api).
//
// HTTP fetching and HTML parsing are explicit non-goals (spec.md §1):
// the claim loop here claims queue items and logs them rather than
// fetching pages, and parser.Dispatch starts with no ParseFunc
// registered for any page type.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lute-crawl/internal/albums"
	"github.com/tomtom215/lute-crawl/internal/api"
	"github.com/tomtom215/lute-crawl/internal/config"
	"github.com/tomtom215/lute-crawl/internal/crawler"
	"github.com/tomtom215/lute-crawl/internal/eventbus"
	"github.com/tomtom215/lute-crawl/internal/files"
	"github.com/tomtom215/lute-crawl/internal/logging"
	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/parser"
	"github.com/tomtom215/lute-crawl/internal/queue"
	"github.com/tomtom215/lute-crawl/internal/recommend"
	"github.com/tomtom215/lute-crawl/internal/store"
	"github.com/tomtom215/lute-crawl/internal/supervisor"
	"github.com/tomtom215/lute-crawl/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.DefaultConfig())
	log := logging.Logger()
	log.Info().Msg("starting lute-crawl")

	redisStore := store.New(store.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer func() {
		if err := redisStore.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis connection")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisStore.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis ping failed at startup, will retry through the circuit breaker")
	}

	bus := eventbus.New(redisStore)
	crawlQueue := queue.New(redisStore, cfg.Queue.MaxSize, cfg.Queue.ClaimTTL, log)

	contentStore, err := files.OpenContentStore(cfg.Files.BadgerDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open content store")
	}
	defer func() {
		if err := contentStore.Close(); err != nil {
			log.Error().Err(err).Msg("error closing content store")
		}
	}()

	metadataRepo := files.NewMetadataRepository(redisStore)
	ttl := files.TTLDays{
		Album:             cfg.TTL.AlbumDays,
		Artist:            cfg.TTL.ArtistDays,
		Chart:             cfg.TTL.ChartDays,
		AlbumSearchResult: cfg.TTL.AlbumSearchResultDays,
	}
	filesInteractor := files.NewInteractor(contentStore, metadataRepo, bus, ttl)

	searchIndex := albums.NewSearchIndex(redisStore)
	if err := searchIndex.SetupIndex(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to set up album search index")
	}
	albumsInteractor := albums.NewInteractor(searchIndex, log)

	crawlerInteractor := crawler.NewInteractor(filesInteractor, crawlQueue)

	// Parsers themselves are out of core scope (§4.4); Dispatch only
	// routes FileSaved -> {FileParsed, FileParseFailed}, so no
	// ParseFunc is registered for any page type here.
	dispatch := parser.NewDispatch(filesInteractor, bus)

	recommendEngine := recommend.NewEngine(searchIndex, log)

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	subscribers := []eventbus.Subscriber{
		albums.UpdateAlbumReadModelsSubscriber(albumsInteractor),
		albums.DeleteAlbumReadModelsSubscriber(albumsInteractor),
		albums.CrawlChartAlbumsSubscriber(crawlerInteractor),
		albums.CrawlArtistAlbumsSubscriber(crawlerInteractor),
		{
			ID:        "dispatch_parsed_files",
			Stream:    models.StreamFile,
			BatchSize: int64(cfg.EventBus.DefaultBatchSize),
			Handler:   dispatch.HandleFileSaved,
		},
	}
	for _, sub := range subscribers {
		sub := sub
		svc := services.NewPollLoopService(sub.ID, func(ctx context.Context) {
			bus.Run(ctx, sub, cfg.EventBus.PollInterval, log)
		})
		tree.AddMessagingService(svc)
		log.Info().Str("subscriber", sub.ID).Msg("registered event-bus subscriber poll loop")
	}

	claimLoop := services.NewPollLoopService("crawl-queue-claim-loop", func(ctx context.Context) {
		runClaimLoop(ctx, crawlQueue, cfg.EventBus.PollInterval, log)
	})
	tree.AddMessagingService(claimLoop)

	defaults := api.RecommendDefaults{
		Settings: recommend.AssessmentSettings{
			PrimaryGenreWeight:    cfg.Recommend.PrimaryGenreWeight,
			SecondaryGenreWeight:  cfg.Recommend.SecondaryGenreWeight,
			DescriptorWeight:      cfg.Recommend.DescriptorWeight,
			RatingWeight:          cfg.Recommend.RatingWeight,
			RatingCountWeight:     cfg.Recommend.RatingCountWeight,
			DescriptorCountWeight: cfg.Recommend.DescriptorCountWeight,
			CreditTagWeight:       cfg.Recommend.CreditTagWeight,
			NoveltyScore:          cfg.Recommend.NoveltyScore,
		},
		Count: 20,
	}
	handler := api.NewHandler(filesInteractor, searchIndex, recommendEngine, defaults, log)
	chiMiddleware := api.NewChiMiddleware(api.DefaultChiMiddlewareConfig())
	router := api.NewRouter(handler, chiMiddleware)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))
	log.Info().Str("addr", httpServer.Addr).Msg("http server service registered")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			log.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
		}
	}

	log.Info().Msg("lute-crawl stopped")
}

// runClaimLoop repeatedly claims the next eligible queue item and logs
// it. Fetching the claimed file is an explicit non-goal (spec.md §1),
// so a claimed item is neither deleted nor retried here: its lease
// simply expires and the item becomes reclaimable, exercising the same
// lease semantics a real fetch worker would rely on.
func runClaimLoop(ctx context.Context, q *queue.Queue, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			item, err := q.ClaimItem(ctx)
			if err != nil {
				log.Error().Err(err).Msg("claim queue item failed")
				continue
			}
			if item == nil {
				continue
			}
			log.Info().
				Str("file_name", item.FileName.String()).
				Str("priority", item.Priority.String()).
				Msg("claimed queue item")
		}
	}
}
