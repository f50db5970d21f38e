package storage

// Ring is a buffer addressed modulo its capacity. Elements are queued at
// tail and leave at head. The zero value has no buffer and is always full.
type Ring[T any] struct {
	buf  []T
	head int // index of the oldest element
	tail int // index of the first free slot after the newest element
	size int
}

// NewRing returns a ring of n empty slots.
func NewRing[T any](n int) Ring[T] {
	return Ring[T]{buf: Alloc[T](n)}
}

// Len returns the number of queued elements.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Full reports whether every slot is in use.
func (r *Ring[T]) Full() bool { return r.size == len(r.buf) }

// Head returns the slot of the oldest element. The ring must not be empty.
func (r *Ring[T]) Head() *T { return &r.buf[r.head] }

// Tail returns the slot of the newest element. The ring must not be empty.
func (r *Ring[T]) Tail() *T {
	return &r.buf[(r.tail+len(r.buf)-1)%len(r.buf)]
}

// Slot returns the slot of the i-th oldest element.
func (r *Ring[T]) Slot(i int) *T {
	return &r.buf[(r.head+i)%len(r.buf)]
}

// Grab claims the free slot at tail. The ring must not be full; the caller
// constructs the element in the returned slot.
func (r *Ring[T]) Grab() *T {
	slot := &r.buf[r.tail]
	r.tail = (r.tail + 1) % len(r.buf)
	r.size++
	return slot
}

// Release gives up the head slot. Its element must already have been moved
// out or destructed.
func (r *Ring[T]) Release() {
	r.head = (r.head + 1) % len(r.buf)
	r.size--
}

// runs returns the queued elements as at most two contiguous runs, oldest
// first.
func (r *Ring[T]) runs() (first, second []T) {
	if r.size == 0 {
		return nil, nil
	}
	if r.head < r.tail {
		return r.buf[r.head:r.tail], nil
	}
	return r.buf[r.head:], r.buf[:r.tail]
}

// Clear destructs every queued element.
func (r *Ring[T]) Clear() {
	a, b := r.runs()
	DestroyAll(a)
	DestroyAll(b)
	r.head, r.tail, r.size = 0, 0, 0
}

// Free destructs every queued element and drops the buffer.
func (r *Ring[T]) Free() {
	r.Clear()
	r.buf = nil
}

// Realloc moves the queue into a buffer of exactly n slots with the oldest
// element at index 0. The newest elements that do not fit are destructed.
func (r *Ring[T]) Realloc(n int) {
	if n == len(r.buf) {
		return
	}
	if n < 0 {
		panic(outOfMemory[T](n))
	}
	for r.size > n {
		Destroy(r.Tail())
		r.tail = (r.tail + len(r.buf) - 1) % len(r.buf)
		r.size--
	}
	buf := Alloc[T](n)
	a, b := r.runs()
	Relocate(buf[:len(a)], a)
	Relocate(buf[len(a):len(a)+len(b)], b)
	r.buf, r.head = buf, 0
	r.tail = 0
	if n > 0 {
		r.tail = r.size % n
	}
}

// Steal hands the buffer and the queued elements over to r, leaving src
// empty with no buffer. r must be empty.
func (r *Ring[T]) Steal(src *Ring[T]) {
	*r = *src
	*src = Ring[T]{}
}

// Swap exchanges the contents of r and o.
func (r *Ring[T]) Swap(o *Ring[T]) {
	*r, *o = *o, *r
}
