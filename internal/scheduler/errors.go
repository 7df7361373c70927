package scheduler

import "errors"

var (
	// ErrNotFound is returned when an operation references a concept id
	// that is not present in the graph.
	ErrNotFound = errors.New("concept not found")

	// ErrEmptyHeap is returned by PeekMin and ExtractMin when the heap
	// holds no entries.
	ErrEmptyHeap = errors.New("heap is empty")
)
