// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/lute-crawl/internal/middleware"
)

// NewRouter builds the chi router for every handler exposed by Handler,
// wrapped in the shared CORS/rate-limit/security-header middleware stack.
func NewRouter(h *Handler, chiMiddleware *ChiMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(adaptHandlerFunc(middleware.RequestID))
	r.Use(adaptHandlerFunc(middleware.PrometheusMetrics))
	r.Use(adaptHandlerFunc(middleware.Compression))
	r.Use(chiMiddleware.CORS())
	r.Use(chiMiddleware.RateLimit())
	r.Use(APISecurityHeaders())

	r.With(chiMiddleware.RateLimitHealth()).Get("/healthz", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/files", h.ListFiles)
		r.Get("/files/*", h.GetFileContent)
		r.Get("/files-metadata/*", h.GetFileMetadata)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.RateLimitWrite())
			r.Put("/files/*", h.PutFile)
			r.Delete("/files/*", h.DeleteFile)
		})

		r.Get("/albums/search", h.SearchAlbums)

		r.Post("/recommend", h.RecommendAlbums)
	})

	return r
}

// adaptHandlerFunc lifts an http.HandlerFunc-to-http.HandlerFunc
// middleware (internal/middleware's shape) into chi's
// func(http.Handler) http.Handler convention.
func adaptHandlerFunc(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}
