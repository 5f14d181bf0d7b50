// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package services

import "context"

// PollLoopService adapts a blocking, context-aware poll loop to suture's
// Serve pattern. A poll loop is a single function that already blocks
// until its context is cancelled - eventbus.Bus.Run and a crawl-queue
// claim loop both have this shape, so one wrapper covers both.
//
// Example usage:
//
//	svc := services.NewPollLoopService("album-projector", func(ctx context.Context) {
//	    bus.Run(ctx, projectorSub, pollInterval, log)
//	})
//	tree.AddMessagingService(svc)
type PollLoopService struct {
	name string
	run  func(ctx context.Context)
}

// NewPollLoopService wraps run as a named suture.Service. run must block
// until ctx is cancelled and return promptly afterward.
func NewPollLoopService(name string, run func(ctx context.Context)) *PollLoopService {
	return &PollLoopService{name: name, run: run}
}

// Serve implements suture.Service.
func (s *PollLoopService) Serve(ctx context.Context) error {
	s.run(ctx)
	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *PollLoopService) String() string {
	return s.name
}
