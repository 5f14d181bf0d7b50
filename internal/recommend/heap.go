// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package recommend

import "sync"

// scoreFunc extracts the ordering key for an item held in a
// BoundedMinHeap.
type scoreFunc[T any] func(T) float32

// BoundedMinHeap is a fixed-capacity min-heap ordered by score (§4.7),
// adapted from internal/cache's generic MinHeap[T] by re-keying its
// timestamp comparisons on float32 score instead. Push is O(log
// capacity); once full, an incoming item that does not beat the current
// minimum is discarded rather than grown into the heap.
type BoundedMinHeap[T any] struct {
	mu       sync.Mutex
	heap     []T
	score    scoreFunc[T]
	capacity int
}

// NewBoundedMinHeap creates a heap bounded to capacity items, ordered by
// score.
func NewBoundedMinHeap[T any](capacity int, score scoreFunc[T]) *BoundedMinHeap[T] {
	return &BoundedMinHeap[T]{
		heap:     make([]T, 0, capacity),
		score:    score,
		capacity: capacity,
	}
}

// Push inserts an item, evicting the current minimum if the heap is at
// capacity and the item scores higher than it. Items that don't beat a
// full heap's minimum are silently discarded.
func (h *BoundedMinHeap[T]) Push(item T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.heap) < h.capacity {
		h.heap = append(h.heap, item)
		h.bubbleUp(len(h.heap) - 1)
		return
	}
	if h.capacity == 0 {
		return
	}
	if h.score(item) <= h.score(h.heap[0]) {
		return
	}
	h.heap[0] = item
	h.bubbleDown(0)
}

// Len returns the current number of items held.
func (h *BoundedMinHeap[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.heap)
}

// DrainSortedDesc empties the heap and returns its items largest-score-first.
func (h *BoundedMinHeap[T]) DrainSortedDesc() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.heap)
	out := make([]T, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = h.popMin()
	}
	h.heap = h.heap[:0]
	return out
}

// popMin removes and returns the minimum-score element. Caller must hold mu.
func (h *BoundedMinHeap[T]) popMin() T {
	n := len(h.heap) - 1
	min := h.heap[0]
	h.heap[0] = h.heap[n]
	h.heap = h.heap[:n]
	if n > 0 {
		h.bubbleDown(0)
	}
	return min
}

func (h *BoundedMinHeap[T]) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.score(h.heap[i]) >= h.score(h.heap[parent]) {
			break
		}
		h.heap[i], h.heap[parent] = h.heap[parent], h.heap[i]
		i = parent
	}
}

func (h *BoundedMinHeap[T]) bubbleDown(i int) {
	n := len(h.heap)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.score(h.heap[left]) < h.score(h.heap[smallest]) {
			smallest = left
		}
		if right < n && h.score(h.heap[right]) < h.score(h.heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.heap[i], h.heap[smallest] = h.heap[smallest], h.heap[i]
		i = smallest
	}
}
