package scheduler

// Entry is a (concept id, strength) pair held by the heap. Entries go
// stale as concepts decay until UpdateKey or Rebuild refreshes them.
type Entry struct {
	ID       string
	Strength float64
}

// MinHeap is an array-backed binary min-heap ordered by ascending
// strength. Tie order between equal strengths depends on insertion and
// swap history and is not defined.
type MinHeap struct {
	items []Entry
}

// NewMinHeap returns an empty heap.
func NewMinHeap() *MinHeap {
	return &MinHeap{}
}

// Insert appends the pair and sifts it up. O(log n).
func (h *MinHeap) Insert(id string, strength float64) {
	h.items = append(h.items, Entry{ID: id, Strength: strength})
	h.siftUp(len(h.items) - 1)
}

// ExtractMin removes and returns the id with the smallest strength.
func (h *MinHeap) ExtractMin() (string, error) {
	if len(h.items) == 0 {
		return "", ErrEmptyHeap
	}
	min := h.items[0].ID
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return min, nil
}

// PeekMin returns the id at the root without removing it.
func (h *MinHeap) PeekMin() (string, error) {
	if len(h.items) == 0 {
		return "", ErrEmptyHeap
	}
	return h.items[0].ID, nil
}

// UpdateKey overwrites the strength recorded for id and restores heap
// order, sifting up on a decrease and down on an increase. The lookup is
// a linear scan; an absent id is a no-op.
func (h *MinHeap) UpdateKey(id string, strength float64) {
	for i := range h.items {
		if h.items[i].ID != id {
			continue
		}
		old := h.items[i].Strength
		h.items[i].Strength = strength
		if strength < old {
			h.siftUp(i)
		} else {
			h.siftDown(i)
		}
		return
	}
}

// Rebuild discards all current entries and heapifies the replacement set
// bottom-up in O(n).
func (h *MinHeap) Rebuild(entries []Entry) {
	h.items = append(h.items[:0], entries...)
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// Size returns the number of entries.
func (h *MinHeap) Size() int {
	return len(h.items)
}

// IsEmpty reports whether the heap holds no entries.
func (h *MinHeap) IsEmpty() bool {
	return len(h.items) == 0
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[parent].Strength <= h.items[i].Strength {
			return
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	for {
		min := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.items[left].Strength < h.items[min].Strength {
			min = left
		}
		if right < n && h.items[right].Strength < h.items[min].Strength {
			min = right
		}
		if min == i {
			return
		}
		h.items[i], h.items[min] = h.items[min], h.items[i]
		i = min
	}
}
