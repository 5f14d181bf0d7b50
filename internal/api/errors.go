// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package api provides HTTP handlers for the Lute-crawl application.
//
// errors.go - Common API error definitions
//
// This file contains sentinel errors for common API error conditions.
package api

import "errors"

// Common API errors
var (
	// ErrMissingFileName indicates a route or query parameter that should
	// carry a FileName was empty.
	ErrMissingFileName = errors.New("file name is required")

	// ErrInvalidRecommendationCount indicates a requested recommendation
	// count was zero or negative.
	ErrInvalidRecommendationCount = errors.New("recommendation count must be positive")
)
