// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

/*
Package services provides suture.Service wrappers for Lute-crawl components.

This package adapts existing application components to the suture v4 supervision
model, translating two lifecycle patterns (blocking Run, ListenAndServe) into
suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation (Run or ListenAndServe to Serve pattern)
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Poll Loop (PollLoopService):
  - Wraps any blocking, context-aware poll loop
  - Covers eventbus.Bus.Run (subscriber batch polling) and the crawl
    queue's claim loop
  - No Start/Stop split - the wrapped function already blocks on ctx

# Usage Example

Creating and registering services:

	import (
	    "time"

	    "github.com/tomtom215/lute-crawl/internal/supervisor"
	    "github.com/tomtom215/lute-crawl/internal/supervisor/services"
	)

	func setupSupervisor(httpServer *http.Server, bus *eventbus.Bus) {
	    tree, _ := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())

	    // HTTP server with 10s shutdown timeout
	    httpSvc := services.NewHTTPServerService(httpServer, 10*time.Second)
	    tree.AddAPIService(httpSvc)

	    // Album projector subscriber poll loop
	    projectorSvc := services.NewPollLoopService("album-projector", func(ctx context.Context) {
	        bus.Run(ctx, projectorSub, 2*time.Second, logger)
	    })
	    tree.AddMessagingService(projectorSvc)

	    // Start supervision
	    tree.Serve(ctx)
	}

# Lifecycle Patterns

The package handles two lifecycle patterns; there is no wrapper for a
Start/Stop component.

Blocking Run Pattern:

	type Runner func(ctx context.Context) // blocks until ctx is cancelled

	// Wrapped as:
	func (s *PollLoopService) Serve(ctx context.Context) error {
	    s.run(ctx)
	    return ctx.Err()
	}

ListenAndServe Pattern:

	type Listener interface {
	    ListenAndServe() error
	    Shutdown(ctx context.Context) error
	}

	// Wrapped as:
	func (s *Service) Serve(ctx context.Context) error {
	    go s.server.ListenAndServe()
	    <-ctx.Done()
	    return s.server.Shutdown(shutdownCtx)
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

# Service Identification

All services implement fmt.Stringer for logging:

	func (s *HTTPServerService) String() string {
	    return "http-server"
	}

Suture uses this for log messages:

	INFO http-server: starting
	INFO http-server: stopped
	ERROR http-server: restarting after failure

# Thread Safety

All service wrappers are safe for concurrent use:
  - State is protected by mutexes where needed
  - Context cancellation is handled atomically
  - Multiple Serve calls are not supported (undefined behavior)

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - internal/eventbus: Bus.Run, the poll loop PollLoopService wraps
  - github.com/thejerf/suture/v4: Underlying supervision library
*/
package services
