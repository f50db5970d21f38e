// Package errs holds the error conditions shared by the containers.
//
// Every condition has a sentinel so callers can tell them apart with
// errors.Is. The constructors below attach the details of the failing call
// and mark the sentinel on the result.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfMemory marks a storage request that cannot be satisfied. It is
	// only ever carried by a panic.
	ErrOutOfMemory = errors.New("containers: out of memory")

	// ErrOutOfRange is returned for an index outside the live elements.
	ErrOutOfRange = errors.New("containers: index out of range")

	// ErrCapacity is returned when an operation would exceed a hard size
	// limit: a fixed-capacity array, a full queue, or a full array whose
	// element kind cannot be moved into a larger buffer.
	ErrCapacity = errors.New("containers: capacity exceeded")

	// ErrEmpty is returned when removing from an empty container.
	ErrEmpty = errors.New("containers: container is empty")

	// ErrInvalidIterator is returned when erasing through an end iterator or
	// an iterator whose element was already removed.
	ErrInvalidIterator = errors.New("containers: invalid iterator")
)

// IndexError reports the offending index together with the size of the
// container at the time of the call.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0:%d]", e.Index, e.Size)
}

// Is lets errors.Is match ErrOutOfRange without the mark.
func (e *IndexError) Is(target error) bool {
	return target == ErrOutOfRange
}

// OutOfRange builds the error for index against a container of size
// elements. The *IndexError can be recovered with errors.As.
func OutOfRange(index, size int) error {
	return errors.Mark(errors.WithStack(&IndexError{Index: index, Size: size}), ErrOutOfRange)
}

// Capacity builds the error for op asking for requested slots out of capacity.
func Capacity(op string, requested, capacity int) error {
	return errors.Mark(errors.Newf("%s: %d elements requested, capacity is %d", op, requested, capacity), ErrCapacity)
}

// Empty builds the error for op on an empty container.
func Empty(op string) error {
	return errors.Mark(errors.Newf("%s: container is empty", op), ErrEmpty)
}

// InvalidIterator builds the error for op given an unusable iterator.
func InvalidIterator(op string) error {
	return errors.Mark(errors.Newf("%s: iterator does not reference a live element", op), ErrInvalidIterator)
}

// OutOfMemory builds the error for a buffer of n elements of elemSize bytes.
func OutOfMemory(n int, elemSize uintptr) error {
	return errors.Mark(errors.Newf("cannot allocate %d elements of %d bytes", n, elemSize), ErrOutOfMemory)
}
