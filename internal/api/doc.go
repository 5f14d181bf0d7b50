// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

/*
Package api provides the HTTP REST API layer for Lute-crawl.

It exposes the file ingestion, album search, and recommendation
interactors over chi, using a standardized JSON envelope (response.go)
and a CORS/rate-limit/security-header middleware stack
(chi_middleware.go).

Endpoints:

	GET    /healthz                  liveness probe
	GET    /api/v1/files              list every saved file name
	GET    /api/v1/files/*            fetch a file's raw content
	PUT    /api/v1/files/*            save a file's content (§4.3)
	DELETE /api/v1/files/*            delete a file
	GET    /api/v1/files-metadata/*   fetch a file's metadata
	GET    /api/v1/albums/search      filtered album search (§4.5)
	POST   /api/v1/recommend          score candidates against a profile (§4.7)

File names are wildcard path segments since a FileName embeds slashes
(e.g. "album/radiohead/ok-computer").

Usage Example:

	handler := api.NewHandler(filesInteractor, searchIndex, engine, defaults, log)
	chiMW := api.NewChiMiddleware(api.DefaultChiMiddlewareConfig())
	router := api.NewRouter(handler, chiMW)
	http.ListenAndServe(cfg.Server.Addr, router)

Authentication is an explicit non-goal (spec.md §1); there is no
authorization layer here for a caller to configure.

See Also:

  - internal/files, internal/albums, internal/recommend: the interactors
    this package wraps
  - internal/middleware: RequestID/PrometheusMetrics/Compression,
    adapted to chi's middleware signature in router.go
  - internal/validation: request struct validation
*/
package api
