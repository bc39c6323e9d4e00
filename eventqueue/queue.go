package eventqueue

import "container/heap"

// entry is the internal heap node. index tracks its position in the heap
// slice (-1 when not currently stored) so Shift/Remove can locate and
// re-heapify it in O(log n) via container/heap.Fix / heap.Remove, rather
// than the lazy-deletion discipline used elsewhere in this codebase's
// lineage (e.g. a plain priority queue that just ignores stale pops) — the
// per-variable handle contract in §4.1 requires a real, re-keyable slot.
type entry[T any] struct {
	key   Time
	event T
	index int
}

// Handle is an opaque reference to a queued entry, returned by Insert and
// Shift. The zero Handle is invalid (Valid reports false).
type Handle[T any] struct {
	e *entry[T]
}

// Valid reports whether h refers to a live entry (obtained from Insert or
// Shift, and not yet Removed).
func (h Handle[T]) Valid() bool { return h.e != nil }

// Entry is a (key, event, handle) triple as returned by Tops.
type Entry[T any] struct {
	Key    Time
	Event  T
	Handle Handle[T]
}

// entryHeap implements container/heap.Interface over *entry[T], ordered by
// Time.Less, keeping each entry's index field current on every swap so
// Handle-based Fix/Remove stay O(log n).
type entryHeap[T any] []*entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool { return h[i].key.Less(h[j].key) }

func (h entryHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is an ordered multimap from superdense Time to an event payload T,
// with O(log n) Insert/Shift/Remove and O(1) Top. Duplicate keys are
// allowed. The zero Queue is ready to use.
type Queue[T any] struct {
	h         entryHeap[T]
	active    Time
	activeSet bool
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Insert adds event at key, returning a Handle for future Shift/Remove
// calls. Complexity: O(log n).
func (q *Queue[T]) Insert(key Time, event T) Handle[T] {
	e := &entry[T]{key: key, event: event}
	heap.Push(&q.h, e)
	return Handle[T]{e: e}
}

// Shift re-keys the entry referenced by h to newKey, re-inserting it if it
// had previously been removed (e.g. by Tops). Returns the (possibly
// unchanged) handle for the entry; callers should always store the
// returned handle. A zero/invalid h is returned as is and nothing is
// queued; a first entry is added with Insert.
// Complexity: O(log n).
func (q *Queue[T]) Shift(h Handle[T], newKey Time) Handle[T] {
	if h.e == nil {
		return h
	}
	h.e.key = newKey
	if h.e.index >= 0 {
		heap.Fix(&q.h, h.e.index)
	} else {
		heap.Push(&q.h, h.e)
	}
	return h
}

// Remove discards the entry referenced by h, if it is currently queued.
// Complexity: O(log n).
func (q *Queue[T]) Remove(h Handle[T]) {
	if h.e == nil || h.e.index < 0 {
		return
	}
	heap.Remove(&q.h, h.e.index)
}

// Top returns the earliest (key, event) pair without removing it. ok is
// false when the queue is empty. Complexity: O(1).
func (q *Queue[T]) Top() (key Time, event T, ok bool) {
	if len(q.h) == 0 {
		return Time{}, event, false
	}
	return q.h[0].key, q.h[0].event, true
}

// Tops removes and returns every entry tied for the earliest key — the
// batch of simultaneous triggers the simulation loop processes as one
// superdense-time step. Returns nil if the queue is empty.
//
// Complexity: O(k log n) for a batch of size k, a conservative
// simplification of the O(k + log n) latitude §4.1 allows; correctness is
// unaffected since entries tied for the minimum key are always extracted
// consecutively by repeated heap.Pop.
func (q *Queue[T]) Tops() []Entry[T] {
	if len(q.h) == 0 {
		return nil
	}
	top := q.h[0].key
	var out []Entry[T]
	for len(q.h) > 0 && q.h[0].key.Equal(top) {
		e := heap.Pop(&q.h).(*entry[T])
		out = append(out, Entry[T]{Key: e.key, Event: e.event, Handle: Handle[T]{e: e}})
	}
	return out
}

// Empty reports whether the queue has no entries.
func (q *Queue[T]) Empty() bool { return len(q.h) == 0 }

// Size returns the number of queued entries.
func (q *Queue[T]) Size() int { return len(q.h) }

// SetActiveTime records the superdense time of the batch about to be
// processed. Subsequent calls to Key derive the correct pass index for
// events scheduled during that batch's advance.
func (q *Queue[T]) SetActiveTime(key Time) {
	q.active = key
	q.activeSet = true
}

// Key computes the superdense time at which an event with category o
// scheduled at real time t should be queued, given the currently active
// time recorded by SetActiveTime:
//
//   - t > active.T: a genuinely future event, pass index 0.
//   - t <= active.T: an event created within the current batch. It receives
//     the active pass index i if its category sorts after the active
//     category (o > active.O — it will be processed later in this same
//     pass), or i+1 otherwise (it must wait for the next pass to avoid
//     splitting the batch already in flight).
//
// If SetActiveTime has never been called, every Key call behaves as if
// t > active.T (pass index 0).
func (q *Queue[T]) Key(t float64, o Category) Time {
	if !q.activeSet || t > q.active.T {
		return Time{T: t, I: 0, O: o}
	}
	if o > q.active.O {
		return Time{T: t, I: q.active.I, O: o}
	}
	return Time{T: t, I: q.active.I + 1, O: o}
}
