// Package projection maintains the ordered in-memory mirror of the item
// store that backs the scrollable list view.
//
// The list is a cache, never a second source of truth: callers mutate the
// store first and patch the projection only after the write is confirmed
// (commit-then-patch). Raw mutable access is not exposed; every change goes
// through one of the patch operations below.
package projection

import (
	"fmt"
	"sync"

	"suitcase-cli/internal/model"
)

// IndexError reports a position-based access outside [0, len). It indicates
// a stale index in the caller, so it carries enough context to debug loudly.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("projection index %d out of range [0, %d)", e.Index, e.Len)
}

// List is the ordered, randomly-indexable mirror of the live item set.
// All operations are safe for concurrent use; the mutex also serves as the
// single critical section when the host dispatches commands concurrently.
type List struct {
	mu    sync.Mutex
	items []model.Item
}

func New() *List {
	return &List{items: []model.Item{}}
}

// Reload replaces the entire projection with a fresh store snapshot, in the
// snapshot's order. Called at startup and whenever the view becomes active
// again, to absorb out-of-band mutations.
func (l *List) Reload(items []model.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items[:0:0], items...)
}

// Append adds a newly created record to the end of the sequence.
func (l *List) Append(it model.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, it)
}

// ReplaceAt overwrites the element at index in place, preserving position.
func (l *List) ReplaceAt(index int, it model.Item) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return IndexError{Index: index, Len: len(l.items)}
	}
	l.items[index] = it
	return nil
}

// RemoveAt splices out the element at index. Every held position >= index
// is stale afterwards and must be re-derived by identity.
func (l *List) RemoveAt(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return IndexError{Index: index, Len: len(l.items)}
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// ToggleAt flips the cached purchased flag without reordering.
func (l *List) ToggleAt(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return IndexError{Index: index, Len: len(l.items)}
	}
	l.items[index].Purchased = !l.items[index].Purchased
	return nil
}

// At returns the element at index.
func (l *List) At(index int) (model.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.items) {
		return model.Item{}, IndexError{Index: index, Len: len(l.items)}
	}
	return l.items[index], nil
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// IndexOf resolves an id to its current position, or -1 when the id is not
// in the projection. Commands resolve identity to position with this at
// patch time, never trusting a position captured earlier.
func (l *List) IndexOf(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Items returns a copy of the current sequence for rendering.
func (l *List) Items() []model.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Item(nil), l.items...)
}
