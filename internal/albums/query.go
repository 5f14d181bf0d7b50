// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package albums

import (
	"fmt"
	"strings"
)

// SearchPagination bounds a Search call.
type SearchPagination struct {
	Offset int
	Limit  int
}

// SearchQuery is the filter set for Search, translated into an FT.SEARCH
// query string (§4.5), grounded on
// original_source/core/src/albums/redis_album_search_index.rs's
// AlbumSearchQuery::to_ft_search_query.
type SearchQuery struct {
	Text                     *string
	ExactName                *string
	IncludeDuplicates        bool
	MinPrimaryGenreCount     *int
	MinSecondaryGenreCount   *int
	MinDescriptorCount       *int
	MinReleaseYear           *int
	MaxReleaseYear           *int
	IncludeFileNames         []string
	IncludeArtists           []string
	IncludePrimaryGenres     []string
	IncludeSecondaryGenres   []string
	IncludeLanguages         []string
	IncludeDescriptors       []string
	ExcludeArtists           []string
	ExcludeFileNames         []string
	ExcludePrimaryGenres     []string
	ExcludeSecondaryGenres   []string
	ExcludeLanguages         []string
}

func escapeTagValue(s string) string {
	replacer := strings.NewReplacer(
		",", "\\,", ".", "\\.", "<", "\\<", ">", "\\>", "{", "\\{", "}", "\\}",
		"[", "\\[", "]", "\\]", "\"", "\\\"", "'", "\\'", ":", "\\:", ";", "\\;",
		"!", "\\!", "@", "\\@", "#", "\\#", "$", "\\$", "%", "\\%", "^", "\\^",
		"&", "\\&", "*", "\\*", "(", "\\(", ")", "\\)", "-", "\\-", "+", "\\+",
		"=", "\\=", "~", "\\~", "|", "\\|", " ", "\\ ",
	)
	return replacer.Replace(s)
}

func escapeSearchQueryText(s string) string {
	replacer := strings.NewReplacer(
		"-", "\\-", "(", "\\(", ")", "\\)", "|", "\\|", "\"", "\\\"",
	)
	return replacer.Replace(s)
}

func tagQuery(tag string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = escapeTagValue(item)
	}
	return fmt.Sprintf("%s:{%s} ", tag, strings.Join(escaped, "|"))
}

func minNumQuery(tag string, min *int) string {
	if min == nil {
		return ""
	}
	return fmt.Sprintf("%s:[%d, +inf] ", tag, *min)
}

func numRangeQuery(tag string, min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s:[%d, %d] ", tag, *min, *max)
	case min != nil:
		return fmt.Sprintf("%s:[%d, +inf] ", tag, *min)
	case max != nil:
		return fmt.Sprintf("%s:[-inf, %d] ", tag, *max)
	default:
		return ""
	}
}

// ToFTSearchQuery builds the FT.SEARCH query string for this filter set.
func (q *SearchQuery) ToFTSearchQuery() string {
	var b strings.Builder
	if q.Text != nil {
		fmt.Fprintf(&b, "(%s) ", escapeSearchQueryText(*q.Text))
	}
	if q.ExactName != nil {
		b.WriteString(tagQuery("@name_tag", []string{*q.ExactName}))
	}
	if !q.IncludeDuplicates {
		zero := 0
		b.WriteString(numRangeQuery("@is_duplicate", &zero, &zero))
	}
	b.WriteString(minNumQuery("@primary_genre_count", q.MinPrimaryGenreCount))
	b.WriteString(minNumQuery("@secondary_genre_count", q.MinSecondaryGenreCount))
	b.WriteString(minNumQuery("@descriptor_count", q.MinDescriptorCount))
	b.WriteString(numRangeQuery("@release_year", q.MinReleaseYear, q.MaxReleaseYear))
	b.WriteString(tagQuery("@file_name", q.IncludeFileNames))
	b.WriteString(tagQuery("@artist_file_name", q.IncludeArtists))
	b.WriteString(tagQuery("@primary_genre", q.IncludePrimaryGenres))
	b.WriteString(tagQuery("@secondary_genre", q.IncludeSecondaryGenres))
	b.WriteString(tagQuery("@language", q.IncludeLanguages))
	b.WriteString(tagQuery("@descriptor", q.IncludeDescriptors))
	b.WriteString(tagQuery("-@artist_file_name", q.ExcludeArtists))
	b.WriteString(tagQuery("-@file_name", q.ExcludeFileNames))
	b.WriteString(tagQuery("-@primary_genre", q.ExcludePrimaryGenres))
	b.WriteString(tagQuery("-@secondary_genre", q.ExcludeSecondaryGenres))
	b.WriteString(tagQuery("-@language", q.ExcludeLanguages))

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "*"
	}
	return out
}

// EmbeddingSimilaritySearchQuery runs a KNN vector search restricted to
// embeddings stored under EmbeddingKey, re-using SearchQuery for its
// scalar filters.
type EmbeddingSimilaritySearchQuery struct {
	EmbeddingKey string
	Embedding    []float32
	Filters      SearchQuery
	Limit        int
}

// ToFTSearchQuery builds the hybrid filter+KNN query string.
func (q *EmbeddingSimilaritySearchQuery) ToFTSearchQuery() string {
	filters := q.Filters.ToFTSearchQuery()
	if filters == "*" {
		filters = ""
	}
	return fmt.Sprintf("(%s%s)=>[KNN %d @embedding $BLOB as distance]",
		tagQuery("@embedding_key", []string{q.EmbeddingKey}), filters, q.Limit)
}
