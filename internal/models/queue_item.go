// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority is the crawl queue's sort score: smaller sorts earlier.
type Priority int

const (
	PriorityExpress Priority = iota
	PriorityHigh
	PriorityStandard
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityExpress:
		return "express"
	case PriorityHigh:
		return "high"
	case PriorityStandard:
		return "standard"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// PriorityFromScore recovers a Priority from the sorted-set score it was
// stored as.
func PriorityFromScore(score float64) (Priority, error) {
	p := Priority(int(score))
	switch p {
	case PriorityExpress, PriorityHigh, PriorityStandard, PriorityLow:
		return p, nil
	default:
		return 0, fmt.Errorf("%w: invalid priority score %v", ErrInvalidInput, score)
	}
}

// itemKeyDelimiter is the literal separator in the serialized ItemKey form.
// It must never be reused inside a deduplication key.
const itemKeyDelimiter = ":DELIMETER:"

// ItemKey is the queue member identity: the time of enqueue combined with
// the deduplication key (§3.5).
type ItemKey struct {
	EnqueueTime      time.Time
	DeduplicationKey string
}

// String serializes the ItemKey as "<unix_seconds>:DELIMETER:<key>".
func (k ItemKey) String() string {
	return fmt.Sprintf("%d%s%s", k.EnqueueTime.Unix(), itemKeyDelimiter, k.DeduplicationKey)
}

// ParseItemKey parses the serialized form, rejecting malformed strings.
func ParseItemKey(s string) (ItemKey, error) {
	parts := strings.SplitN(s, itemKeyDelimiter, 2)
	if len(parts) != 2 {
		return ItemKey{}, fmt.Errorf("%w: malformed item key %q", ErrInvalidInput, s)
	}
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ItemKey{}, fmt.Errorf("%w: malformed item key timestamp %q", ErrInvalidInput, s)
	}
	return ItemKey{
		EnqueueTime:      time.Unix(sec, 0).UTC(),
		DeduplicationKey: parts[1],
	}, nil
}

// QueueItemSetRecord is the hash-field payload stored per deduplication key
// at crawler:queue:items.
type QueueItemSetRecord struct {
	FileName      FileName          `json:"file_name"`
	CorrelationID *string           `json:"correlation_id,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// QueueItem is a fully-hydrated queue entry: item identity plus payload.
type QueueItem struct {
	ItemKey          ItemKey
	FileName         FileName
	Priority         Priority
	CorrelationID    *string
	Metadata         map[string]string
}

// ClaimedQueueItem pairs a queue item with its remaining claim-lease TTL.
type ClaimedQueueItem struct {
	Item            QueueItem
	ClaimTTLSeconds int64
}

// QueuePushParams are the caller-supplied fields for Queue.Push.
type QueuePushParams struct {
	FileName         FileName
	Priority         *Priority // nil -> PriorityStandard
	DeduplicationKey *string   // nil -> FileName.String()
	CorrelationID    *string
	Metadata         map[string]string
}
