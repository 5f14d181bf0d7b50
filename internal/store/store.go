// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package store wraps a Redis connection as the KV+Index Backend (§2 item
// 1): JSON document put/get/delete, full-text/tag/numeric/vector secondary
// indexes via the RediSearch module, and the sorted-set/hash primitives and
// atomic transactions the priority queue and event bus build on.
//
// go-redis has no native RedisJSON/RediSearch command wrappers, so those
// two concerns go through Client.Do with raw command arguments, guarded by
// a circuit breaker; the sorted-set, hash, and transaction primitives use
// go-redis's native API directly.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/lute-crawl/internal/metrics"
)

// Store holds the shared, concurrent-safe Redis connection pool.
type Store struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[any]
}

// newBreaker trips after 5 consecutive failures, allows 3 trial requests
// once half-open, and resets its failure count every 30s while closed.
func newBreaker() *gobreaker.CircuitBreaker[any] {
	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, _, to gobreaker.State) {
			metrics.SetStoreCircuitBreakerState(int(to))
		},
	})
}

// execute runs a raw Redis command (JSON.*, FT.*) through the circuit
// breaker, recording its latency regardless of outcome. Native go-redis
// calls (sorted sets, hashes, transactions) bypass this since go-redis
// already pools and times out its own connections; this only guards the
// hand-rolled command escape hatch above.
func (s *Store) execute(op string, fn func() error) error {
	start := time.Now()
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	metrics.RecordStoreOp(op, time.Since(start))
	return err
}

// Config are the connection settings consumed by New.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New connects to Redis using the given config and returns a Store.
func New(cfg Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &Store{client: client, breaker: newBreaker()}
}

// NewFromClient wraps an existing *redis.Client, used by tests to attach a
// miniredis-backed client instead of dialing a real server.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client, breaker: newBreaker()}
}

// Client returns the underlying go-redis client for native sorted-set,
// hash, string, and transaction operations that don't need the JSON/FT
// escape hatch.
func (s *Store) Client() *redis.Client {
	return s.client
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close shuts down the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// JSONSet writes a JSON document (or sub-path) via RedisJSON's JSON.SET.
// value must already be a JSON-encoded string.
func (s *Store) JSONSet(ctx context.Context, key, path, value string) error {
	return s.execute("JSON.SET", func() error {
		return s.client.Do(ctx, "JSON.SET", key, path, value).Err()
	})
}

// JSONGet reads a JSON document (or sub-path) via JSON.GET. ok is false if
// the key (or path) does not exist.
func (s *Store) JSONGet(ctx context.Context, key, path string) (raw string, ok bool, err error) {
	err = s.execute("JSON.GET", func() error {
		var doErr error
		raw, doErr = s.client.Do(ctx, "JSON.GET", key, path).Text()
		return doErr
	})
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: JSON.GET %s %s: %w", key, path, err)
	}
	return raw, true, nil
}

// JSONMGet reads the same path across multiple keys via JSON.MGET.
func (s *Store) JSONMGet(ctx context.Context, keys []string, path string) ([]string, error) {
	args := make([]interface{}, 0, len(keys)+2)
	args = append(args, "JSON.MGET")
	for _, k := range keys {
		args = append(args, k)
	}
	args = append(args, path)

	var reply []interface{}
	err := s.execute("JSON.MGET", func() error {
		var doErr error
		reply, doErr = s.client.Do(ctx, args...).Slice()
		return doErr
	})
	if err != nil {
		return nil, fmt.Errorf("store: JSON.MGET: %w", err)
	}
	out := make([]string, len(reply))
	for i, v := range reply {
		if v == nil {
			continue
		}
		if sv, ok := v.(string); ok {
			out[i] = sv
		}
	}
	return out, nil
}

// JSONDel removes a JSON document (or sub-path) via JSON.DEL.
func (s *Store) JSONDel(ctx context.Context, key, path string) error {
	return s.execute("JSON.DEL", func() error {
		return s.client.Do(ctx, "JSON.DEL", key, path).Err()
	})
}

// FTCreate issues a raw FT.CREATE command; args are the command tokens
// after the index name (schema, ON JSON, PREFIX, etc), left to the caller
// since the schema differs per index.
func (s *Store) FTCreate(ctx context.Context, indexName string, args ...interface{}) error {
	cmdArgs := make([]interface{}, 0, len(args)+2)
	cmdArgs = append(cmdArgs, "FT.CREATE", indexName)
	cmdArgs = append(cmdArgs, args...)
	return s.execute("FT.CREATE", func() error {
		return s.client.Do(ctx, cmdArgs...).Err()
	})
}

// FTIndexExists reports whether an FT index has already been created,
// via FT.INFO, so callers can make index creation idempotent. FT.INFO is
// issued directly, not through the circuit breaker.
func (s *Store) FTIndexExists(ctx context.Context, indexName string) bool {
	err := s.client.Do(ctx, "FT.INFO", indexName).Err()
	return err == nil
}

// FTSearchRow is one result row from FT.SEARCH: the document key plus its
// flat list of returned field/value pairs.
type FTSearchRow struct {
	Key    string
	Fields map[string]string
}

// FTSearchResult is the parsed reply of an FT.SEARCH call.
type FTSearchResult struct {
	Total int
	Rows  []FTSearchRow
}

// FTSearch issues a raw FT.SEARCH command and parses the RESP2-style
// "total, key1, fields1, key2, fields2, ..." reply shape into rows.
func (s *Store) FTSearch(ctx context.Context, indexName, query string, args ...interface{}) (*FTSearchResult, error) {
	cmdArgs := make([]interface{}, 0, len(args)+3)
	cmdArgs = append(cmdArgs, "FT.SEARCH", indexName, query)
	cmdArgs = append(cmdArgs, args...)

	var reply []interface{}
	err := s.execute("FT.SEARCH", func() error {
		var doErr error
		reply, doErr = s.client.Do(ctx, cmdArgs...).Slice()
		return doErr
	})
	if err != nil {
		return nil, fmt.Errorf("store: FT.SEARCH %s: %w", indexName, err)
	}
	if len(reply) == 0 {
		return &FTSearchResult{}, nil
	}

	total, _ := toInt(reply[0])
	result := &FTSearchResult{Total: total}

	for i := 1; i < len(reply); i += 2 {
		key, _ := reply[i].(string)
		row := FTSearchRow{Key: key, Fields: map[string]string{}}
		if i+1 < len(reply) {
			if pairs, ok := reply[i+1].([]interface{}); ok {
				for j := 0; j+1 < len(pairs); j += 2 {
					field, _ := pairs[j].(string)
					value, _ := pairs[j+1].(string)
					row.Fields[field] = value
				}
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// FTTagVals returns the distinct values observed for a tag attribute, via
// FT.TAGVALS.
func (s *Store) FTTagVals(ctx context.Context, indexName, attribute string) ([]string, error) {
	var res []string
	err := s.execute("FT.TAGVALS", func() error {
		var doErr error
		res, doErr = s.client.Do(ctx, "FT.TAGVALS", indexName, attribute).StringSlice()
		return doErr
	})
	if err != nil {
		return nil, fmt.Errorf("store: FT.TAGVALS %s %s: %w", indexName, attribute, err)
	}
	return res, nil
}

func toInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int64:
		return int(t), true
	case string:
		var n int
		_, err := fmt.Sscanf(t, "%d", &n)
		return n, err == nil
	default:
		return 0, false
	}
}
