// Package recency keeps a short history of viewed postings.
package recency

import (
	"slices"
	"sync"
)

// DefaultCapacity is used when a tracker is created with a non-positive capacity.
const DefaultCapacity = 5

// Tracker is a bounded FIFO of posting ids. Once full, every Record evicts the
// oldest entry. Duplicates are kept as separate entries.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	ids      []int64
}

func New(capacity int) *Tracker {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Tracker{
		capacity: capacity,
		ids:      make([]int64, 0, capacity),
	}
}

// Record appends id, dropping the oldest entry when the tracker overflows.
func (t *Tracker) Record(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.ids) == t.capacity {
		copy(t.ids, t.ids[1:])
		t.ids = t.ids[:len(t.ids)-1]
	}
	t.ids = append(t.ids, id)
}

// List returns the held ids oldest first.
func (t *Tracker) List() []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.ids)
}

// Newest returns the held ids newest first.
func (t *Tracker) Newest() []int64 {
	ids := t.List()
	slices.Reverse(ids)
	return ids
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.ids)
}

func (t *Tracker) Cap() int {
	return t.capacity
}

// Reset forgets every recorded id.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ids = t.ids[:0]
}
