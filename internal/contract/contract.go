// Package contract declares the method sets the containers share.
//
// These are *type constraints*. Nothing stores a container in one of these
// interfaces at run time; generic code such as the benchmark workloads
// uses them to accept any container, and the tests pin every container
// type to the constraints it must satisfy.
package contract

import (
	"context"
	"iter"
)

// Sized is satisfied by every container.
type Sized interface {
	// Size returns the number of live elements.
	Size() int

	// Empty reports whether Size is zero.
	Empty() bool
}

// Sequence is a container with checked positional access.
type Sequence[T any] interface {
	Sized

	// At returns element i or an error marked errs.ErrOutOfRange.
	At(i int) (*T, error)

	// First and Last return the end elements, or nil when empty.
	First() *T
	Last() *T

	// All iterates over the elements in order.
	All() iter.Seq2[int, T]

	// Clear destructs every element.
	Clear()

	// Reset destructs every element and releases any storage.
	Reset()
}

// Bidirectional is a Sequence that can also be walked back to front.
type Bidirectional[T any] interface {
	Sequence[T]
	Backward() iter.Seq2[int, T]
	PopBack()
}

// Contiguous is a Bidirectional sequence over one buffer whose slots can be
// written directly, for exchange with code that expects a plain slice.
type Contiguous[T any] interface {
	Bidirectional[T]

	// Cap returns the number of slots.
	Cap() int

	// Raw returns every slot; SetSize declares how many of them are live.
	Raw() []T
	SetSize(n int) error

	// Data returns the live elements.
	Data() []T
}

// Handoff is a bounded queue shared between producer and consumer
// goroutines.
type Handoff[T any] interface {
	Sized

	// Put blocks until v is queued or ctx is done.
	Put(ctx context.Context, v T) error

	// Take blocks until an element is available or ctx is done.
	Take(ctx context.Context) (T, error)

	// TryTake returns the oldest element, or false if there is none.
	TryTake() (T, bool)
}
