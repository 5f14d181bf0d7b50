// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package config

import "time"

// RedisConfig holds connection settings for the KV+Index backend.
type RedisConfig struct {
	Addr         string        `koanf:"addr"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db"`
	PoolSize     int           `koanf:"pool_size"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// QueueConfig tunes the priority crawl queue.
type QueueConfig struct {
	MaxSize        int           `koanf:"max_size"`
	ClaimTTL       time.Duration `koanf:"claim_ttl"`
	ClaimScanLimit int           `koanf:"claim_scan_limit"` // not read by the queue; GetNextUnclaimedItem always scans without a bound
}

// TTLConfig maps a page type to its staleness TTL in days.
type TTLConfig struct {
	AlbumDays             int `koanf:"album_days"`
	ArtistDays            int `koanf:"artist_days"`
	ChartDays             int `koanf:"chart_days"`
	AlbumSearchResultDays int `koanf:"album_search_result_days"`
}

// EventBusConfig tunes per-subscriber batch consumption.
type EventBusConfig struct {
	DefaultBatchSize int           `koanf:"default_batch_size"`
	PollInterval     time.Duration `koanf:"poll_interval"`
}

// RecommendWeights mirrors the §4.7 scoring weights, all configurable.
type RecommendWeights struct {
	PrimaryGenreWeight    int     `koanf:"primary_genre_weight"`
	SecondaryGenreWeight  int     `koanf:"secondary_genre_weight"`
	DescriptorWeight      int     `koanf:"descriptor_weight"`
	RatingWeight          int     `koanf:"rating_weight"`
	RatingCountWeight     int     `koanf:"rating_count_weight"`
	DescriptorCountWeight int     `koanf:"descriptor_count_weight"`
	CreditTagWeight       int     `koanf:"credit_tag_weight"`
	NoveltyScore          float64 `koanf:"novelty_score"`
}

// FilesConfig points at the embedded content-addressed blob store.
type FilesConfig struct {
	BadgerDir string `koanf:"badger_dir"`
}

// ServerConfig binds the thin HTTP/RPC surface.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Config is the fully-resolved application configuration.
type Config struct {
	Redis     RedisConfig      `koanf:"redis"`
	Queue     QueueConfig      `koanf:"queue"`
	TTL       TTLConfig        `koanf:"ttl"`
	EventBus  EventBusConfig   `koanf:"event_bus"`
	Recommend RecommendWeights `koanf:"recommend"`
	Files     FilesConfig      `koanf:"files"`
	Server    ServerConfig     `koanf:"server"`
}

// defaultConfig returns a Config with all sensible default values applied.
// These defaults are overridden in order by an optional config file, then
// by environment variables.
func defaultConfig() *Config {
	return &Config{
		Redis: RedisConfig{
			Addr:         "127.0.0.1:6379",
			DB:           0,
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Queue: QueueConfig{
			MaxSize:        10000,
			ClaimTTL:       5 * time.Minute,
			ClaimScanLimit: 0,
		},
		TTL: TTLConfig{
			AlbumDays:             30,
			ArtistDays:            7,
			ChartDays:             1,
			AlbumSearchResultDays: 7,
		},
		EventBus: EventBusConfig{
			DefaultBatchSize: 50,
			PollInterval:     2 * time.Second,
		},
		Recommend: RecommendWeights{
			PrimaryGenreWeight:    4,
			SecondaryGenreWeight:  2,
			DescriptorWeight:      7,
			RatingWeight:          2,
			RatingCountWeight:     1,
			DescriptorCountWeight: 2,
			CreditTagWeight:       1,
			NoveltyScore:          0.2,
		},
		Files: FilesConfig{
			BadgerDir: "/data/lute-crawl/files",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
	}
}
