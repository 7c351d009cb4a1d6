package pqueue

import "errors"

// Sentinel errors for queue operations.
var (
	// ErrEmpty indicates Peek or Pop was called on an empty queue.
	ErrEmpty = errors.New("pqueue: queue is empty")

	// ErrDuplicate indicates Push was called with an element already queued.
	ErrDuplicate = errors.New("pqueue: element already queued")

	// ErrNotFound indicates Update or Remove was called with an element
	// that is not queued.
	ErrNotFound = errors.New("pqueue: element not queued")
)

// IDFunc maps an element to its identity. Two elements with the same ID are
// the same element as far as the queue is concerned.
type IDFunc[E any, ID comparable] func(E) ID

// KeyFunc maps an element to its priority. Smaller keys pop first.
type KeyFunc[E any] func(E) float64

// Queue is an indexed binary min-heap.
//
// items holds the heap array; keys[i] is the key items[i] had when it was
// last placed at i; index maps an element's ID to its position in items.
type Queue[E any, ID comparable] struct {
	items []E
	keys  []float64
	index map[ID]int
	id    IDFunc[E, ID]
	key   KeyFunc[E]
}
