package pqueue

import "fmt"

// CheckInvariants verifies heap order against the recorded keys and the
// consistency of the position index. Tests only.
func (q *Queue[E, ID]) CheckInvariants() error {
	if len(q.items) != len(q.keys) {
		return fmt.Errorf("items/keys length mismatch: %d vs %d", len(q.items), len(q.keys))
	}
	if len(q.items) != len(q.index) {
		return fmt.Errorf("items/index length mismatch: %d vs %d", len(q.items), len(q.index))
	}
	for i, e := range q.items {
		if j, ok := q.index[q.id(e)]; !ok || j != i {
			return fmt.Errorf("index of item %d is %d (present=%v)", i, j, ok)
		}
		if i > 0 {
			if p := (i - 1) / 2; q.keys[i] < q.keys[p] {
				return fmt.Errorf("heap order broken at %d: key %v < parent key %v", i, q.keys[i], q.keys[p])
			}
		}
	}
	return nil
}
