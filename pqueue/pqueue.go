package pqueue

// New returns an empty Queue that identifies elements with id and orders
// them by key. key is evaluated once when an element is pushed; afterwards
// the queue only learns about key changes through Update.
func New[E any, ID comparable](id IDFunc[E, ID], key KeyFunc[E]) *Queue[E, ID] {
	return &Queue[E, ID]{
		index: make(map[ID]int),
		id:    id,
		key:   key,
	}
}

// Len returns the number of queued elements.
func (q *Queue[E, ID]) Len() int { return len(q.items) }

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[E, ID]) IsEmpty() bool { return len(q.items) == 0 }

// Contains reports whether an element with e's ID is queued.
// Complexity: O(1).
func (q *Queue[E, ID]) Contains(e E) bool {
	_, ok := q.index[q.id(e)]
	return ok
}

// Push inserts e at the end of the heap array and sifts it toward the root
// while its key is strictly smaller than its parent's recorded key.
// Returns ErrDuplicate if e is already queued; callers that may re-discover
// an element should check Contains and call Update instead.
// Complexity: O(log n).
func (q *Queue[E, ID]) Push(e E) error {
	if q.Contains(e) {
		return ErrDuplicate
	}
	q.push(e, q.key(e))

	return nil
}

// Peek returns the minimum element without removing it.
func (q *Queue[E, ID]) Peek() (E, error) {
	if len(q.items) == 0 {
		var zero E
		return zero, ErrEmpty
	}

	return q.items[0], nil
}

// Pop removes and returns the minimum element. The last element of the heap
// array is moved into the root and sifted down: it is swapped with its
// smaller child (the right one on a tie) until no child is strictly smaller.
// Complexity: O(log n).
func (q *Queue[E, ID]) Pop() (E, error) {
	if len(q.items) == 0 {
		var zero E
		return zero, ErrEmpty
	}

	return q.removeAt(0), nil
}

// Update reconciles the position of e after its key changed to newKey.
// The caller mutates the element first and then reports the new key:
//
//   - newKey below the recorded key: e is sifted up from its position.
//   - newKey above the recorded key: e is removed and pushed again.
//   - newKey equal to the recorded key: nothing moves.
//
// Returns ErrNotFound if e is not queued.
// Complexity: O(log n).
func (q *Queue[E, ID]) Update(e E, newKey float64) error {
	i, ok := q.index[q.id(e)]
	if !ok {
		return ErrNotFound
	}

	old := q.keys[i]
	switch {
	case newKey < old:
		q.items[i] = e
		q.keys[i] = newKey
		q.up(i)
	case newKey > old:
		q.removeAt(i)
		q.push(e, newKey)
	}

	return nil
}

// Remove deletes e from the queue wherever it sits.
// Returns ErrNotFound if e is not queued.
// Complexity: O(log n).
func (q *Queue[E, ID]) Remove(e E) error {
	i, ok := q.index[q.id(e)]
	if !ok {
		return ErrNotFound
	}
	q.removeAt(i)

	return nil
}

// push appends e with the given recorded key and restores heap order.
func (q *Queue[E, ID]) push(e E, k float64) {
	q.items = append(q.items, e)
	q.keys = append(q.keys, k)
	i := len(q.items) - 1
	q.index[q.id(e)] = i
	q.up(i)
}

// removeAt deletes the element at i, fills the hole with the last element
// and restores heap order around it.
func (q *Queue[E, ID]) removeAt(i int) E {
	e := q.items[i]
	delete(q.index, q.id(e))

	last := len(q.items) - 1
	if i != last {
		q.place(i, q.items[last], q.keys[last])
	}
	var zero E
	q.items[last] = zero
	q.items = q.items[:last]
	q.keys = q.keys[:last]

	// The moved element may belong above i when i is not the root.
	if i < last && q.down(i) == i {
		q.up(i)
	}

	return e
}

// place stores e at i and records its key and position.
func (q *Queue[E, ID]) place(i int, e E, k float64) {
	q.items[i] = e
	q.keys[i] = k
	q.index[q.id(e)] = i
}

func (q *Queue[E, ID]) swap(i, j int) {
	ei, ki := q.items[i], q.keys[i]
	q.place(i, q.items[j], q.keys[j])
	q.place(j, ei, ki)
}

// up sifts the element at i toward the root and returns its final index.
func (q *Queue[E, ID]) up(i int) int {
	for i > 0 {
		p := (i - 1) / 2
		if !(q.keys[i] < q.keys[p]) {
			break
		}
		q.swap(i, p)
		i = p
	}

	return i
}

// down sifts the element at i toward the leaves and returns its final index.
func (q *Queue[E, ID]) down(i int) int {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			break
		}
		c := l
		if r := l + 1; r < n && !(q.keys[l] < q.keys[r]) {
			c = r
		}
		if !(q.keys[c] < q.keys[i]) {
			break
		}
		q.swap(i, c)
		i = c
	}

	return i
}
