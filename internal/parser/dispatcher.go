// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package parser

import (
	"context"
	"fmt"

	"github.com/oklog/ulid"

	"github.com/tomtom215/lute-crawl/internal/eventbus"
	"github.com/tomtom215/lute-crawl/internal/models"
)

// ContentLoader is the subset of *files.Interactor Dispatch needs to
// load a saved file's raw content.
type ContentLoader interface {
	GetFileContent(ctx context.Context, fileName models.FileName) ([]byte, error)
}

// ParseFunc is a pure function from raw content to parsed data, supplied
// by the caller per page type. Parsers themselves are out of core scope
// (§4.4); Dispatch only routes to them and translates the outcome into
// FileParsed/FileParseFailed.
type ParseFunc func(content []byte) (models.ParsedData, error)

// Dispatch selects a registered ParseFunc by PageType and publishes the
// outcome, grounded on spec §4.4's FileSaved -> {FileParsed,
// FileParseFailed} data flow.
type Dispatch struct {
	content ContentLoader
	bus     *eventbus.Bus
	parsers map[models.PageType]ParseFunc
}

// NewDispatch constructs a Dispatch with no parsers registered; call
// Register for each PageType the caller supports.
func NewDispatch(content ContentLoader, bus *eventbus.Bus) *Dispatch {
	return &Dispatch{
		content: content,
		bus:     bus,
		parsers: make(map[models.PageType]ParseFunc),
	}
}

// Register attaches a parser function for one page type.
func (d *Dispatch) Register(pageType models.PageType, fn ParseFunc) {
	d.parsers[pageType] = fn
}

// HandleFileSaved loads the saved file's content, parses it by page
// type, and publishes FileParsed on success or FileParseFailed on
// error. A missing registration for the page type is itself reported as
// a parse failure rather than silently skipped, since every page type
// crawled is expected to have a parser wired.
func (d *Dispatch) HandleFileSaved(ctx context.Context, payload models.EventPayload) error {
	if payload.Event.Type != models.EventTypeFileSaved {
		return nil
	}
	fileName := payload.Event.FileName
	fileID := payload.Event.FileID

	content, err := d.content.GetFileContent(ctx, fileName)
	if err != nil {
		return err
	}

	fn, ok := d.parsers[fileName.PageType()]
	if !ok {
		return d.publishParseFailed(ctx, fileID, fileName, fmt.Sprintf("no parser registered for page type %q", fileName.PageType()))
	}

	data, err := fn(content)
	if err != nil {
		return d.publishParseFailed(ctx, fileID, fileName, err.Error())
	}
	return d.publishParsed(ctx, fileID, fileName, data)
}

func (d *Dispatch) publishParsed(ctx context.Context, fileID ulid.ULID, fileName models.FileName, data models.ParsedData) error {
	payload := models.EventPayload{
		Event: models.Event{
			Type:     models.EventTypeFileParsed,
			FileID:   fileID,
			FileName: fileName,
			Data:     &data,
		},
	}
	return d.bus.Publish(ctx, models.StreamParser, payload)
}

func (d *Dispatch) publishParseFailed(ctx context.Context, fileID ulid.ULID, fileName models.FileName, reason string) error {
	payload := models.EventPayload{
		Event: models.Event{
			Type:     models.EventTypeFileParseFailed,
			FileID:   fileID,
			FileName: fileName,
			Error:    reason,
		},
	}
	// Parser failures surface as events, never as errors at the bus
	// layer (§7), so this always returns nil on a successful publish.
	return d.bus.Publish(ctx, models.StreamParser, payload)
}
