// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package recommend implements the Quantile-Rank Recommendation Engine
// (§4.7): given a listener profile and a pool of novel candidate albums,
// it scores each candidate against the profile's play-weighted tag and
// numeric distributions, then returns the top-K by score via a bounded
// min-heap fed from a parallel worker pool.
package recommend
