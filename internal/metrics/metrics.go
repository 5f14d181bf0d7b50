// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the ingestion and recommendation pipeline:
// the priority crawl queue, the event bus, file ingestion, parser dispatch,
// the quantile-rank recommendation engine, and the thin HTTP surface.

var (
	// Queue metrics
	QueuePushTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawl_queue_push_total",
			Help: "Total number of crawl queue push attempts",
		},
		[]string{"outcome"}, // outcome: "pushed", "duplicate", "full"
	)

	QueueClaimDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crawl_queue_claim_duration_seconds",
			Help:    "Duration of a queue claim scan",
			Buckets: prometheus.DefBuckets,
		},
	)

	QueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crawl_queue_size",
			Help: "Current number of items waiting in the crawl queue",
		},
	)

	// Event bus metrics
	EventBusBatchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "event_bus_batch_size",
			Help:    "Number of entries fetched per subscriber batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"subscriber"},
	)

	EventBusHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_bus_handler_errors_total",
			Help: "Total number of subscriber handler failures",
		},
		[]string{"subscriber"},
	)

	// File ingestion metrics
	FileIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "files_ingested_total",
			Help: "Total number of files saved or deleted",
		},
		[]string{"page_type", "operation"}, // operation: "saved", "deleted"
	)

	FileFreshnessCacheResult = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_freshness_cache_total",
			Help: "Outcome of the in-process IsFileStale freshness cache",
		},
		[]string{"result"}, // result: "hit", "miss"
	)

	// Parser metrics
	ParseOutcome = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parse_outcome_total",
			Help: "Outcome of parser dispatch by page type",
		},
		[]string{"page_type", "outcome"}, // outcome: "parsed", "failed"
	)

	// Recommendation engine metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of a single Recommend call",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendCandidatesAssessed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates_assessed",
			Help:    "Number of candidate albums assessed per Recommend call",
			Buckets: []float64{10, 50, 100, 500, 1000, 2500, 5000},
		},
	)

	RecommendCandidatesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_candidates_skipped_total",
			Help: "Total number of candidates skipped for failing the assessable precondition",
		},
	)

	// Store (Redis) metrics
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_op_duration_seconds",
			Help:    "Duration of a Redis operation as seen through the circuit breaker",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	StoreCircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_circuit_breaker_state",
			Help: "Current state of the Redis circuit breaker (0=closed, 1=half-open, 2=open)",
		},
	)

	// Generic in-process cache metrics, labelled by cache name.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of in-process cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of in-process cache misses",
		},
		[]string{"cache"},
	)

	// HTTP API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of HTTP requests currently being handled",
		},
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordQueuePush records the outcome of a single queue push attempt.
func RecordQueuePush(outcome string) {
	QueuePushTotal.WithLabelValues(outcome).Inc()
}

// RecordQueueClaimDuration records how long a claim scan took.
func RecordQueueClaimDuration(duration time.Duration) {
	QueueClaimDuration.Observe(duration.Seconds())
}

// RecordEventBusBatch records one RunOnce batch for a subscriber.
func RecordEventBusBatch(subscriber string, size int, errored bool) {
	EventBusBatchSize.WithLabelValues(subscriber).Observe(float64(size))
	if errored {
		EventBusHandlerErrors.WithLabelValues(subscriber).Inc()
	}
}

// RecordFileIngested records a file save or delete by page type.
func RecordFileIngested(pageType, operation string) {
	FileIngested.WithLabelValues(pageType, operation).Inc()
}

// RecordFreshnessCacheResult records a hit or miss against the IsFileStale
// freshness cache.
func RecordFreshnessCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	FileFreshnessCacheResult.WithLabelValues(result).Inc()
}

// RecordParseOutcome records a FileParsed or FileParseFailed outcome.
func RecordParseOutcome(pageType string, failed bool) {
	outcome := "parsed"
	if failed {
		outcome = "failed"
	}
	ParseOutcome.WithLabelValues(pageType, outcome).Inc()
}

// RecordRecommend records a completed Recommend call.
func RecordRecommend(duration time.Duration, candidatesAssessed, candidatesSkipped int) {
	RecommendDuration.Observe(duration.Seconds())
	RecommendCandidatesAssessed.Observe(float64(candidatesAssessed))
	if candidatesSkipped > 0 {
		RecommendCandidatesSkipped.Add(float64(candidatesSkipped))
	}
}

// RecordStoreOp records the duration of one Redis operation.
func RecordStoreOp(op string, duration time.Duration) {
	StoreOpDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// SetStoreCircuitBreakerState reports the breaker's current numeric state.
func SetStoreCircuitBreakerState(state int) {
	StoreCircuitBreakerState.Set(float64(state))
}

// RecordCacheResult records a hit or miss for a named in-process cache.
func RecordCacheResult(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordAPIRequest records an HTTP request outcome and latency.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments (inc=true) or decrements the in-flight
// HTTP request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
