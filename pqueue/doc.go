// Package pqueue provides an indexed binary min-heap: a priority queue that,
// besides Push and Pop, can test membership and reposition an element whose
// key changed after it was queued.
//
// What:
//
//   - Queue[E, ID] stores distinct elements, identified by a caller-supplied
//     id function, ordered by a caller-supplied key function.
//   - The queue remembers the key each element had when it was last placed,
//     so Update can tell a decrease from an increase.
//   - Decrease-key sifts the element toward the root; increase-key removes
//     the element and re-inserts it from scratch.
//
// Why:
//
//   - A* and Dijkstra relax tentative distances of elements already in the
//     open set. The "lazy" strategy used by container/heap based searches
//     leaves stale duplicates behind; an indexed queue keeps exactly one entry
//     per element so Contains stays exact.
//
// Determinism:
//
//	Ties are resolved purely by the heap structure: Push and Update only
//	move an element past a strictly larger key, and when both children of a
//	node carry the same key Pop descends into the right one. The same sequence
//	of calls therefore always yields the same sequence of pops.
//
// Complexity:
//
//   - Push, Pop, Update, Remove: O(log n)
//   - Peek, Contains, Len:       O(1)
//   - Memory:                    O(n)
//
// Errors:
//
//   - ErrEmpty:     Peek or Pop on an empty queue.
//   - ErrDuplicate: Push of an element whose id is already queued.
//   - ErrNotFound:  Update or Remove of an element that is not queued.
//
// Thread safety:
//
//	A Queue is not safe for concurrent use; synchronize externally.
package pqueue
