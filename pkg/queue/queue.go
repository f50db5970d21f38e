// Package queue implements a bounded FIFO over a circular buffer.
//
// Queue is single-owner like the other containers. Blocking wraps a Queue
// for producer/consumer handoff between goroutines.
package queue

import (
	"iter"

	"github.com/makma3d/containers/internal/storage"
	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

// Queue is a FIFO of at most Cap elements of T. A full queue never
// reallocates on its own; pushes fail with errs.ErrCapacity until an
// element is popped or Reserve is called.
type Queue[T any, K traits.Kind] struct {
	traits.Control[K]
	ring storage.Ring[T]
}

// New creates an empty queue with room for capacity elements.
func New[T any, K traits.Kind](capacity int) *Queue[T, K] {
	return &Queue[T, K]{ring: storage.NewRing[T](capacity)}
}

// Size returns the number of queued elements.
func (q *Queue[T, K]) Size() int { return q.ring.Len() }

// Cap returns the number of slots.
func (q *Queue[T, K]) Cap() int { return q.ring.Cap() }

// Empty reports whether nothing is queued.
func (q *Queue[T, K]) Empty() bool { return q.ring.Len() == 0 }

// Full reports whether a push would fail.
func (q *Queue[T, K]) Full() bool { return q.ring.Full() }

// First returns the element Pop would return next, or nil.
func (q *Queue[T, K]) First() *T {
	if q.ring.Len() == 0 {
		return nil
	}
	return q.ring.Head()
}

// Last returns the most recently pushed element, or nil.
func (q *Queue[T, K]) Last() *T {
	if q.ring.Len() == 0 {
		return nil
	}
	return q.ring.Tail()
}

// At returns the i-th oldest element.
func (q *Queue[T, K]) At(i int) (*T, error) {
	if i < 0 || i >= q.ring.Len() {
		return nil, errs.OutOfRange(i, q.ring.Len())
	}
	return q.ring.Slot(i), nil
}

// Clear destructs every queued element and keeps the buffer.
func (q *Queue[T, K]) Clear() { q.ring.Clear() }

// Reset destructs every queued element and releases the buffer. The queue
// has no room left until Reserve is called.
func (q *Queue[T, K]) Reset() { q.ring.Free() }

// Swap exchanges the contents of q and o.
func (q *Queue[T, K]) Swap(o *Queue[T, K]) { q.ring.Swap(&o.ring) }

// All iterates over the queued elements, oldest first.
func (q *Queue[T, K]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < q.ring.Len(); i++ {
			if !yield(i, *q.ring.Slot(i)) {
				return
			}
		}
	}
}

func (q *Queue[T, K]) grab(op string) (*T, error) {
	if q.ring.Full() {
		return nil, errs.Capacity(op, q.ring.Len()+1, q.ring.Cap())
	}
	return q.ring.Grab(), nil
}

// PushDefault queues a default-constructed element.
func PushDefault[T any, K traits.Default](q *Queue[T, K]) error {
	slot, err := q.grab("push")
	if err != nil {
		return err
	}
	storage.Construct(slot)
	return nil
}

// Push queues a copy of v.
func Push[T any, K traits.Copy](q *Queue[T, K], v T) error {
	slot, err := q.grab("push")
	if err != nil {
		return err
	}
	storage.CopyInto(slot, &v)
	return nil
}

// PushMove moves *v into the queue, leaving *v zero.
func PushMove[T any, K traits.Move](q *Queue[T, K], v *T) error {
	slot, err := q.grab("push")
	if err != nil {
		return err
	}
	storage.MoveInto(slot, v)
	return nil
}

// Pop moves the oldest element out of the queue.
func Pop[T any, K traits.Move](q *Queue[T, K]) (T, error) {
	var out T
	if q.ring.Len() == 0 {
		return out, errs.Empty("pop")
	}
	storage.MoveInto(&out, q.ring.Head())
	q.ring.Release()
	return out, nil
}

// PopCopy returns a copy of the oldest element and destructs the original.
// It serves kinds that can copy but not move.
func PopCopy[T any, K traits.Copy](q *Queue[T, K]) (T, error) {
	var out T
	if q.ring.Len() == 0 {
		return out, errs.Empty("pop copy")
	}
	slot := q.ring.Head()
	storage.CopyInto(&out, slot)
	storage.Destroy(slot)
	q.ring.Release()
	return out, nil
}

// Reserve grows the buffer to n slots if it is smaller, moving the queued
// elements to the front. Reserve(q, 0) resets the queue.
func Reserve[T any, K traits.Move](q *Queue[T, K], n int) {
	if n == 0 {
		q.Reset()
		return
	}
	if n > q.ring.Cap() {
		q.ring.Realloc(n)
	}
}

// HardReserve reallocates the buffer to exactly n slots. The newest
// elements that do not fit are destructed.
func HardReserve[T any, K traits.Move](q *Queue[T, K], n int) {
	q.ring.Realloc(n)
}

// Clone returns a deep copy of src with the same capacity.
func Clone[T any, K traits.Copy](src *Queue[T, K]) *Queue[T, K] {
	q := New[T, K](src.ring.Cap())
	Assign(q, src)
	return q
}

// Assign replaces the contents of dst with copies of the elements of src.
// dst grows to src's capacity if it is smaller.
func Assign[T any, K traits.Copy](dst, src *Queue[T, K]) {
	if dst == src {
		return
	}
	dst.ring.Clear()
	if dst.ring.Cap() < src.ring.Cap() {
		dst.ring = storage.NewRing[T](src.ring.Cap())
	}
	for i := 0; i < src.ring.Len(); i++ {
		storage.CopyInto(dst.ring.Grab(), src.ring.Slot(i))
	}
}

// Take moves the contents of src into a new queue. src is left empty with
// no buffer.
func Take[T any, K traits.Move](src *Queue[T, K]) *Queue[T, K] {
	q := &Queue[T, K]{}
	q.ring.Steal(&src.ring)
	return q
}

// MoveTo destructs the contents of dst and moves those of src into it. src
// is left empty with no buffer.
func MoveTo[T any, K traits.Move](dst, src *Queue[T, K]) {
	if dst == src {
		return
	}
	dst.ring.Free()
	dst.ring.Steal(&src.ring)
}
