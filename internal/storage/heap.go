// Package storage owns the raw element memory of the containers.
//
// Heap backs the growable array and the queue, Inline backs the
// fixed-capacity array. Both keep the live elements in the prefix
// [0, Len) of their buffer and the zero value in every slot after it.
// They know nothing about insertion order; the container packages decide
// where elements go and use the lifecycle helpers in this package to put
// them there.
package storage

import (
	"math/bits"
	"unsafe"

	"github.com/makma3d/containers/pkg/errs"
)

// maxAlloc bounds a single buffer. The runtime refuses anything near this
// size anyway; checking first turns the failure into a marked error.
const maxAlloc = uintptr(1) << (bits.UintSize/2 + 15)

// Alloc returns a zeroed buffer of n slots. It panics with an error marked
// errs.ErrOutOfMemory when n cannot be represented.
func Alloc[T any](n int) []T {
	var zero T
	size := unsafe.Sizeof(zero)
	if n < 0 || (size > 0 && uintptr(n) > maxAlloc/size) {
		panic(outOfMemory[T](n))
	}
	if n == 0 {
		return nil
	}
	return make([]T, n)
}

func outOfMemory[T any](n int) error {
	var zero T
	return errs.OutOfMemory(n, unsafe.Sizeof(zero))
}

// Heap is a heap-allocated buffer plus the count of live elements. The zero
// value is empty with no buffer.
type Heap[T any] struct {
	buf  []T
	size int
}

// Len returns the number of live elements.
func (h *Heap[T]) Len() int { return h.size }

// Cap returns the number of slots in the buffer.
func (h *Heap[T]) Cap() int { return len(h.buf) }

// Live returns the live elements.
func (h *Heap[T]) Live() []T { return h.buf[:h.size] }

// Raw returns every slot of the buffer.
func (h *Heap[T]) Raw() []T { return h.buf }

// SetLen sets the live count without touching any slot. n must not exceed
// Cap.
func (h *Heap[T]) SetLen(n int) { h.size = n }

// Realloc moves the buffer to one of exactly n slots. Elements that do not
// fit are destructed first.
func (h *Heap[T]) Realloc(n int) {
	if n == len(h.buf) {
		return
	}
	if n < 0 {
		panic(outOfMemory[T](n))
	}
	if n < h.size {
		h.Truncate(n)
	}
	buf := Alloc[T](n)
	Relocate(buf[:h.size], h.buf[:h.size])
	h.buf = buf
}

// Truncate destructs the elements from n on.
func (h *Heap[T]) Truncate(n int) {
	if n >= h.size {
		return
	}
	DestroyAll(h.buf[n:h.size])
	h.size = n
}

// Free destructs every element and drops the buffer.
func (h *Heap[T]) Free() {
	h.Truncate(0)
	h.buf = nil
}

// Steal hands the buffer and its elements over to h, leaving src empty. h
// must be empty.
func (h *Heap[T]) Steal(src *Heap[T]) {
	h.buf, h.size = src.buf, src.size
	src.buf, src.size = nil, 0
}

// Swap exchanges the contents of h and o.
func (h *Heap[T]) Swap(o *Heap[T]) {
	h.buf, o.buf = o.buf, h.buf
	h.size, o.size = o.size, h.size
}
