// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package albums

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lute-crawl/internal/models"
)

// Interactor is the write path for album read models: every Put/Delete
// triggers duplicate reconciliation across the affected artists' other
// albums (§4.5), grounded on
// original_source/core/src/albums/album_interactor.rs.
//
// Reconciliation errors are logged and swallowed rather than propagated:
// a stale duplicates list is recoverable on the next write, but failing
// the caller's Put/Delete over a best-effort side effect is not.
type Interactor struct {
	index *SearchIndex
	log   zerolog.Logger
}

// NewInteractor constructs an Interactor over the given index.
func NewInteractor(index *SearchIndex, log zerolog.Logger) *Interactor {
	return &Interactor{index: index, log: log}
}

// Put upserts an album and reconciles duplicates across its artists.
func (it *Interactor) Put(ctx context.Context, album models.AlbumReadModel) error {
	if err := it.index.Put(ctx, album); err != nil {
		return err
	}
	if err := it.processDuplicates(ctx, album); err != nil {
		it.log.Warn().Err(err).Str("file_name", album.FileName.String()).Msg("duplicate reconciliation failed")
	}
	return nil
}

// Delete removes an album and reconciles duplicates among the albums it
// leaves behind.
//
// The Rust original anchors its post-delete reconciliation on the
// just-deleted file name, which 404s against Get and so can never do
// anything useful — almost certainly a bug. This anchors on a surviving
// sibling instead: the deleted album's duplicate_of target if it was
// itself a duplicate, else the first of its own duplicates list if it
// was the canonical original.
func (it *Interactor) Delete(ctx context.Context, fileName models.FileName) error {
	album, err := it.index.Find(ctx, fileName)
	if err != nil {
		return err
	}
	if err := it.index.Delete(ctx, fileName); err != nil {
		return err
	}
	if album == nil {
		return nil
	}

	var anchor *models.FileName
	switch {
	case album.DuplicateOf != nil:
		anchor = album.DuplicateOf
	case len(album.Duplicates) > 0:
		anchor = &album.Duplicates[0]
	default:
		return nil
	}

	if err := it.processDuplicatesByFileName(ctx, *anchor); err != nil {
		it.log.Warn().Err(err).Str("file_name", fileName.String()).Msg("duplicate reconciliation failed")
	}
	return nil
}

func (it *Interactor) processDuplicates(ctx context.Context, album models.AlbumReadModel) error {
	artistFileNames := make([]models.FileName, len(album.Artists))
	for i, a := range album.Artists {
		artistFileNames[i] = a.FileName
	}
	candidates, err := it.index.FindArtistAlbums(ctx, artistFileNames)
	if err != nil {
		return err
	}

	asciiName := album.AsciiName()
	var matches []models.AlbumReadModel
	for _, c := range candidates {
		if c.AsciiName() == asciiName {
			matches = append(matches, c)
		}
	}
	if len(matches) <= 1 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RatingCount > matches[j].RatingCount
	})
	original := matches[0]
	duplicates := matches[1:]

	duplicateNames := make([]models.FileName, len(duplicates))
	for i, d := range duplicates {
		duplicateNames[i] = d.FileName
	}
	sort.Slice(duplicateNames, func(i, j int) bool {
		return duplicateNames[i].String() < duplicateNames[j].String()
	})

	if !fileNamesEqual(original.Duplicates, duplicateNames) {
		original.Duplicates = duplicateNames
		original.DuplicateOf = nil
		if err := it.index.Put(ctx, original); err != nil {
			return err
		}
	}

	for _, dup := range duplicates {
		if dup.DuplicateOf != nil && *dup.DuplicateOf == original.FileName {
			continue
		}
		dup.DuplicateOf = &original.FileName
		dup.Duplicates = nil
		if err := it.index.Put(ctx, dup); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interactor) processDuplicatesByFileName(ctx context.Context, fileName models.FileName) error {
	album, err := it.index.Find(ctx, fileName)
	if err != nil {
		return err
	}
	if album == nil {
		return nil
	}
	return it.processDuplicates(ctx, *album)
}

func fileNamesEqual(a, b []models.FileName) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
