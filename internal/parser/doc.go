// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

// Package parser implements Parser Dispatch (§4.4): it consumes
// FileSaved events, loads the saved content, and hands it to a
// page-type-specific parser function, emitting FileParsed or
// FileParseFailed on the Parser stream. The parser functions themselves
// (HTML → structured data) are out of core scope and are supplied by
// the caller per page type.
package parser
