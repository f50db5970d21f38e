// Package array implements a growable, contiguous sequence.
//
// Operations that need the element kind to support default, copy or move
// construction are package-level functions gated on K; everything else is a
// method. When the buffer is full, pushes and inserts reallocate according
// to the array's Growth policy. Reallocation relocates elements, so a full
// array whose kind cannot move refuses to grow and returns errs.ErrCapacity
// instead.
package array

import (
	"iter"

	"github.com/makma3d/containers/internal/storage"
	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

// Array is a growable sequence of T whose capabilities are given by K.
// An Array must not be copied; use Clone or Take.
type Array[T any, K traits.Kind] struct {
	traits.Control[K]
	mem    storage.Heap[T]
	growth Growth
}

// New creates an empty array without a buffer.
func New[T any, K traits.Kind](opts ...Option) *Array[T, K] {
	c := buildConfig(opts)
	return &Array[T, K]{growth: c.growth}
}

// WithCapacity creates an empty array with n uninitialised slots.
func WithCapacity[T any, K traits.Kind](n int, opts ...Option) *Array[T, K] {
	a := New[T, K](opts...)
	a.mem.Realloc(n)
	return a
}

// Repeat creates an array holding n copies of v.
func Repeat[T any, K traits.Copy](v T, n int, opts ...Option) *Array[T, K] {
	a := WithCapacity[T, K](n, opts...)
	storage.FillCopies(a.mem.Raw()[:n], &v)
	a.mem.SetLen(n)
	return a
}

// FromSlice creates an array holding copies of the elements of s. s is not
// retained.
func FromSlice[T any, K traits.Copy](s []T, opts ...Option) *Array[T, K] {
	a := WithCapacity[T, K](len(s), opts...)
	storage.CopyAll(a.mem.Raw()[:len(s)], s)
	a.mem.SetLen(len(s))
	return a
}

// Size returns the number of elements.
func (a *Array[T, K]) Size() int { return a.mem.Len() }

// Cap returns the number of slots in the buffer.
func (a *Array[T, K]) Cap() int { return a.mem.Cap() }

// Empty reports whether the array has no elements.
func (a *Array[T, K]) Empty() bool { return a.mem.Len() == 0 }

// Growth returns the growth policy.
func (a *Array[T, K]) Growth() Growth { return a.growth }

// At returns a pointer to element i.
func (a *Array[T, K]) At(i int) (*T, error) {
	if i < 0 || i >= a.mem.Len() {
		return nil, errs.OutOfRange(i, a.mem.Len())
	}
	return &a.mem.Live()[i], nil
}

// Index returns a pointer to element i. It panics if i is out of range.
func (a *Array[T, K]) Index(i int) *T {
	return &a.mem.Live()[i]
}

// First returns the first element, or nil if the array is empty.
func (a *Array[T, K]) First() *T {
	if a.mem.Len() == 0 {
		return nil
	}
	return &a.mem.Live()[0]
}

// Last returns the last element, or nil if the array is empty.
func (a *Array[T, K]) Last() *T {
	n := a.mem.Len()
	if n == 0 {
		return nil
	}
	return &a.mem.Live()[n-1]
}

// Data returns the live elements. The slice aliases the buffer and is
// invalidated by any operation that reallocates.
func (a *Array[T, K]) Data() []T { return a.mem.Live() }

// Raw returns every slot of the buffer for bulk writes from outside the
// container. Follow the writes with SetSize.
func (a *Array[T, K]) Raw() []T { return a.mem.Raw() }

// SetSize declares the first n slots of Raw live. Shrinking destructs the
// elements past n.
func (a *Array[T, K]) SetSize(n int) error {
	if n < 0 || n > a.mem.Cap() {
		return errs.Capacity("set size", n, a.mem.Cap())
	}
	if n < a.mem.Len() {
		a.mem.Truncate(n)
		return nil
	}
	a.mem.SetLen(n)
	return nil
}

// PopBack destructs the last element. It does nothing on an empty array.
func (a *Array[T, K]) PopBack() {
	if n := a.mem.Len(); n > 0 {
		a.mem.Truncate(n - 1)
	}
}

// Clear destructs every element and keeps the buffer.
func (a *Array[T, K]) Clear() { a.mem.Truncate(0) }

// Reset destructs every element and releases the buffer.
func (a *Array[T, K]) Reset() { a.mem.Free() }

// Swap exchanges the contents of a and b.
func (a *Array[T, K]) Swap(b *Array[T, K]) {
	a.mem.Swap(&b.mem)
	a.growth, b.growth = b.growth, a.growth
}

// All iterates over the elements front to back.
func (a *Array[T, K]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.mem.Len(); i++ {
			if !yield(i, a.mem.Live()[i]) {
				return
			}
		}
	}
}

// Backward iterates over the elements back to front.
func (a *Array[T, K]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.mem.Len() - 1; i >= 0; i-- {
			if !yield(i, a.mem.Live()[i]) {
				return
			}
		}
	}
}

// ensure makes room for need elements. Without a movable kind a full buffer
// is an error rather than a reallocation.
func (a *Array[T, K]) ensure(op string, need int) error {
	if need <= a.mem.Cap() {
		return nil
	}
	if !traits.FlagsOf[K]().Move {
		return errs.Capacity(op, need, a.mem.Cap())
	}
	a.mem.Realloc(a.growth.capFor(a.mem.Cap(), need))
	return nil
}

// gap opens an empty slot at i, growing if needed, and returns it. i must
// be in [0, Size].
func (a *Array[T, K]) gap(op string, i int) (*T, error) {
	n := a.mem.Len()
	if i < 0 || i > n {
		return nil, errs.OutOfRange(i, n)
	}
	if err := a.ensure(op, n+1); err != nil {
		return nil, err
	}
	buf := a.mem.Raw()
	storage.Shift(buf, i, i+1, n-i)
	a.mem.SetLen(n + 1)
	return &buf[i], nil
}

// PushBackDefault appends a default-constructed element.
func PushBackDefault[T any, K traits.Default](a *Array[T, K]) error {
	n := a.mem.Len()
	if err := a.ensure("push back", n+1); err != nil {
		return err
	}
	storage.Construct(&a.mem.Raw()[n])
	a.mem.SetLen(n + 1)
	return nil
}

// PushBack appends a copy of v.
func PushBack[T any, K traits.Copy](a *Array[T, K], v T) error {
	n := a.mem.Len()
	if err := a.ensure("push back", n+1); err != nil {
		return err
	}
	storage.CopyInto(&a.mem.Raw()[n], &v)
	a.mem.SetLen(n + 1)
	return nil
}

// PushBackMove moves *v to the back of the array, leaving *v zero.
func PushBackMove[T any, K traits.Move](a *Array[T, K], v *T) error {
	n := a.mem.Len()
	if err := a.ensure("push back", n+1); err != nil {
		return err
	}
	storage.MoveInto(&a.mem.Raw()[n], v)
	a.mem.SetLen(n + 1)
	return nil
}

// PushFrontDefault prepends a default-constructed element.
func PushFrontDefault[T any, K traits.DefaultMove](a *Array[T, K]) error {
	return InsertDefault(a, 0)
}

// PushFront prepends a copy of v.
func PushFront[T any, K traits.CopyMove](a *Array[T, K], v T) error {
	return Insert(a, 0, v)
}

// PushFrontMove moves *v to the front of the array.
func PushFrontMove[T any, K traits.Move](a *Array[T, K], v *T) error {
	return InsertMove(a, 0, v)
}

// PopFront destructs the first element and shifts the rest down. It does
// nothing on an empty array.
func PopFront[T any, K traits.Move](a *Array[T, K]) {
	Erase(a, 0)
}

// InsertDefault inserts a default-constructed element before index i.
// i may equal Size.
func InsertDefault[T any, K traits.DefaultMove](a *Array[T, K], i int) error {
	slot, err := a.gap("insert", i)
	if err != nil {
		return err
	}
	storage.Construct(slot)
	return nil
}

// Insert inserts a copy of v before index i.
func Insert[T any, K traits.CopyMove](a *Array[T, K], i int, v T) error {
	slot, err := a.gap("insert", i)
	if err != nil {
		return err
	}
	storage.CopyInto(slot, &v)
	return nil
}

// InsertMove moves *v into the array before index i.
func InsertMove[T any, K traits.Move](a *Array[T, K], i int, v *T) error {
	slot, err := a.gap("insert", i)
	if err != nil {
		return err
	}
	storage.MoveInto(slot, v)
	return nil
}

// Erase destructs element i and shifts the rest down. An out-of-range i is
// ignored.
func Erase[T any, K traits.Move](a *Array[T, K], i int) {
	EraseRange(a, i, i)
}

// EraseRange destructs the elements start through stop, inclusive. A range
// that is empty or not fully inside the array is ignored.
func EraseRange[T any, K traits.Move](a *Array[T, K], start, stop int) {
	n := a.mem.Len()
	if start < 0 || stop >= n || start > stop {
		return
	}
	buf := a.mem.Raw()
	storage.DestroyAll(buf[start : stop+1])
	storage.Shift(buf, stop+1, start, n-stop-1)
	a.mem.SetLen(n - (stop - start + 1))
}

// Reserve grows the buffer to n slots if it is smaller. Reserve(a, 0)
// resets the array.
func Reserve[T any, K traits.Move](a *Array[T, K], n int) {
	if n == 0 {
		a.Reset()
		return
	}
	if n > a.mem.Cap() {
		a.mem.Realloc(n)
	}
}

// HardReserve reallocates the buffer to exactly n slots, destructing the
// elements that no longer fit. HardReserve(a, 0) resets the array.
func HardReserve[T any, K traits.Move](a *Array[T, K], n int) {
	if n == 0 {
		a.Reset()
		return
	}
	a.mem.Realloc(n)
}

// ResizeDefault makes sure the array holds at least n elements, appending
// default-constructed ones.
func ResizeDefault[T any, K traits.DefaultMove](a *Array[T, K], n int) {
	size := a.mem.Len()
	if n <= size {
		return
	}
	Reserve(a, n)
	storage.ConstructAll(a.mem.Raw()[size:n])
	a.mem.SetLen(n)
}

// Resize makes sure the array holds at least n elements, appending copies
// of v.
func Resize[T any, K traits.CopyMove](a *Array[T, K], v T, n int) {
	size := a.mem.Len()
	if n <= size {
		return
	}
	Reserve(a, n)
	storage.FillCopies(a.mem.Raw()[size:n], &v)
	a.mem.SetLen(n)
}

// HardResizeDefault leaves exactly n elements in a buffer of exactly n
// slots, appending default-constructed elements or destructing surplus ones.
func HardResizeDefault[T any, K traits.DefaultMove](a *Array[T, K], n int) {
	size := a.mem.Len()
	HardReserve(a, n)
	if n > size {
		storage.ConstructAll(a.mem.Raw()[size:n])
		a.mem.SetLen(n)
	}
}

// HardResize is HardResizeDefault with copies of v as the new elements.
func HardResize[T any, K traits.CopyMove](a *Array[T, K], v T, n int) {
	size := a.mem.Len()
	HardReserve(a, n)
	if n > size {
		storage.FillCopies(a.mem.Raw()[size:n], &v)
		a.mem.SetLen(n)
	}
}

// Extend appends copies of the elements of src to dst. src may be dst.
func Extend[T any, K traits.Copy](dst, src *Array[T, K]) error {
	n, m := dst.mem.Len(), src.mem.Len()
	if err := dst.ensure("extend", n+m); err != nil {
		return err
	}
	storage.CopyAll(dst.mem.Raw()[n:n+m], src.mem.Raw()[:m])
	dst.mem.SetLen(n + m)
	return nil
}

// ExtendMove moves the elements of src to the back of dst and leaves src
// empty. Its buffer is kept.
func ExtendMove[T any, K traits.Move](dst, src *Array[T, K]) error {
	if dst == src {
		return nil
	}
	n, m := dst.mem.Len(), src.mem.Len()
	if err := dst.ensure("extend", n+m); err != nil {
		return err
	}
	storage.Relocate(dst.mem.Raw()[n:n+m], src.mem.Live())
	dst.mem.SetLen(n + m)
	src.mem.SetLen(0)
	return nil
}

// Clone returns a deep copy of src with the same capacity and growth policy.
func Clone[T any, K traits.Copy](src *Array[T, K]) *Array[T, K] {
	a := WithCapacity[T, K](src.mem.Cap(), WithGrowth(src.growth))
	storage.CopyAll(a.mem.Raw()[:src.mem.Len()], src.mem.Live())
	a.mem.SetLen(src.mem.Len())
	return a
}

// Assign replaces the contents of dst with copies of the elements of src.
func Assign[T any, K traits.Copy](dst, src *Array[T, K]) {
	if dst == src {
		return
	}
	dst.Clear()
	if dst.mem.Cap() < src.mem.Len() {
		dst.mem.Realloc(src.mem.Len())
	}
	storage.CopyAll(dst.mem.Raw()[:src.mem.Len()], src.mem.Live())
	dst.mem.SetLen(src.mem.Len())
	dst.growth = src.growth
}

// Take moves the contents of src into a new array. src is left empty with
// no buffer.
func Take[T any, K traits.Move](src *Array[T, K]) *Array[T, K] {
	a := New[T, K](WithGrowth(src.growth))
	a.mem.Steal(&src.mem)
	return a
}

// MoveTo destructs the contents of dst and moves the contents of src into
// it. src is left empty with no buffer.
func MoveTo[T any, K traits.Move](dst, src *Array[T, K]) {
	if dst == src {
		return
	}
	dst.Reset()
	dst.mem.Steal(&src.mem)
	dst.growth = src.growth
}
