// Package fixed implements a contiguous sequence whose storage lives inside
// the container value.
//
// The capacity is part of the type: A must be an array type [N]T, checked
// the first time the storage is touched. Nothing ever reallocates; an
// operation that would need more than N slots returns errs.ErrCapacity and
// leaves the array as it was.
//
//	var a fixed.Array[int, traits.DCM, [8]int]
//	_ = fixed.PushBack(&a, 1)
package fixed

import (
	"iter"

	"github.com/makma3d/containers/internal/storage"
	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

// Array is a sequence of at most N elements of T stored in an A = [N]T.
// The zero value is empty and ready to use. An Array must not be copied;
// use Clone or Take.
type Array[T any, K traits.Kind, A any] struct {
	traits.Control[K]
	mem storage.Inline[T, A]
}

// New returns an empty array. It panics if A is not [N]T.
func New[T any, K traits.Kind, A any]() *Array[T, K, A] {
	storage.InlineCap[T, A]()
	return &Array[T, K, A]{}
}

// Repeat returns an array holding n copies of v.
func Repeat[T any, K traits.Copy, A any](v T, n int) (*Array[T, K, A], error) {
	a := New[T, K, A]()
	if err := a.fits("repeat", n); err != nil {
		return nil, err
	}
	storage.FillCopies(a.mem.Raw()[:n], &v)
	a.mem.SetLen(n)
	return a, nil
}

// FromSlice returns an array holding copies of the elements of s.
func FromSlice[T any, K traits.Copy, A any](s []T) (*Array[T, K, A], error) {
	a := New[T, K, A]()
	if err := a.fits("from slice", len(s)); err != nil {
		return nil, err
	}
	storage.CopyAll(a.mem.Raw()[:len(s)], s)
	a.mem.SetLen(len(s))
	return a, nil
}

func (a *Array[T, K, A]) fits(op string, n int) error {
	if n < 0 || n > a.mem.Cap() {
		return errs.Capacity(op, n, a.mem.Cap())
	}
	return nil
}

// Size returns the number of elements.
func (a *Array[T, K, A]) Size() int { return a.mem.Len() }

// Cap returns N.
func (a *Array[T, K, A]) Cap() int { return a.mem.Cap() }

// Empty reports whether the array has no elements.
func (a *Array[T, K, A]) Empty() bool { return a.mem.Len() == 0 }

// Full reports whether all N slots are in use.
func (a *Array[T, K, A]) Full() bool { return a.mem.Len() == a.mem.Cap() }

// At returns a pointer to element i.
func (a *Array[T, K, A]) At(i int) (*T, error) {
	if i < 0 || i >= a.mem.Len() {
		return nil, errs.OutOfRange(i, a.mem.Len())
	}
	return &a.mem.Live()[i], nil
}

// Index returns a pointer to element i. It panics if i is out of range.
func (a *Array[T, K, A]) Index(i int) *T { return &a.mem.Live()[i] }

// First returns the first element, or nil if the array is empty.
func (a *Array[T, K, A]) First() *T {
	if a.mem.Len() == 0 {
		return nil
	}
	return &a.mem.Live()[0]
}

// Last returns the last element, or nil if the array is empty.
func (a *Array[T, K, A]) Last() *T {
	n := a.mem.Len()
	if n == 0 {
		return nil
	}
	return &a.mem.Live()[n-1]
}

// Data returns the live elements. The slice points into a.
func (a *Array[T, K, A]) Data() []T { return a.mem.Live() }

// Raw returns all N slots for bulk writes; follow them with SetSize.
func (a *Array[T, K, A]) Raw() []T { return a.mem.Raw() }

// SetSize declares the first n slots of Raw live. Shrinking destructs the
// elements past n.
func (a *Array[T, K, A]) SetSize(n int) error {
	if err := a.fits("set size", n); err != nil {
		return err
	}
	if n < a.mem.Len() {
		a.mem.Truncate(n)
		return nil
	}
	a.mem.SetLen(n)
	return nil
}

// PopBack destructs the last element. It does nothing on an empty array.
func (a *Array[T, K, A]) PopBack() {
	if n := a.mem.Len(); n > 0 {
		a.mem.Truncate(n - 1)
	}
}

// Clear destructs every element.
func (a *Array[T, K, A]) Clear() { a.mem.Truncate(0) }

// Reset is Clear; there is no buffer to release.
func (a *Array[T, K, A]) Reset() { a.mem.Truncate(0) }

// Swap exchanges the contents of a and b slot by slot.
func (a *Array[T, K, A]) Swap(b *Array[T, K, A]) {
	if a == b {
		return
	}
	x, y := a.mem.Raw(), b.mem.Raw()
	for i := range max(a.mem.Len(), b.mem.Len()) {
		x[i], y[i] = y[i], x[i]
	}
	n := a.mem.Len()
	a.mem.SetLen(b.mem.Len())
	b.mem.SetLen(n)
}

// All iterates over the elements front to back.
func (a *Array[T, K, A]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.mem.Len(); i++ {
			if !yield(i, a.mem.Live()[i]) {
				return
			}
		}
	}
}

// Backward iterates over the elements back to front.
func (a *Array[T, K, A]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.mem.Len() - 1; i >= 0; i-- {
			if !yield(i, a.mem.Live()[i]) {
				return
			}
		}
	}
}

// back returns the slot after the last element.
func (a *Array[T, K, A]) back(op string) (*T, error) {
	n := a.mem.Len()
	if err := a.fits(op, n+1); err != nil {
		return nil, err
	}
	a.mem.SetLen(n + 1)
	return &a.mem.Raw()[n], nil
}

// gap opens an empty slot at i by shifting the tail up.
func (a *Array[T, K, A]) gap(op string, i int) (*T, error) {
	n := a.mem.Len()
	if i < 0 || i > n {
		return nil, errs.OutOfRange(i, n)
	}
	if err := a.fits(op, n+1); err != nil {
		return nil, err
	}
	buf := a.mem.Raw()
	storage.Shift(buf, i, i+1, n-i)
	a.mem.SetLen(n + 1)
	return &buf[i], nil
}

// PushBackDefault appends a default-constructed element.
func PushBackDefault[T any, K traits.Default, A any](a *Array[T, K, A]) error {
	slot, err := a.back("push back")
	if err != nil {
		return err
	}
	storage.Construct(slot)
	return nil
}

// PushBack appends a copy of v.
func PushBack[T any, K traits.Copy, A any](a *Array[T, K, A], v T) error {
	slot, err := a.back("push back")
	if err != nil {
		return err
	}
	storage.CopyInto(slot, &v)
	return nil
}

// PushBackMove moves *v to the back.
func PushBackMove[T any, K traits.Move, A any](a *Array[T, K, A], v *T) error {
	slot, err := a.back("push back")
	if err != nil {
		return err
	}
	storage.MoveInto(slot, v)
	return nil
}

// PushFrontDefault prepends a default-constructed element.
func PushFrontDefault[T any, K traits.DefaultMove, A any](a *Array[T, K, A]) error {
	return InsertDefault(a, 0)
}

// PushFront prepends a copy of v.
func PushFront[T any, K traits.CopyMove, A any](a *Array[T, K, A], v T) error {
	return Insert(a, 0, v)
}

// PushFrontMove moves *v to the front.
func PushFrontMove[T any, K traits.Move, A any](a *Array[T, K, A], v *T) error {
	return InsertMove(a, 0, v)
}

// PopFront destructs the first element and shifts the rest down.
func PopFront[T any, K traits.Move, A any](a *Array[T, K, A]) {
	Erase(a, 0)
}

// InsertDefault inserts a default-constructed element before index i.
func InsertDefault[T any, K traits.DefaultMove, A any](a *Array[T, K, A], i int) error {
	slot, err := a.gap("insert", i)
	if err != nil {
		return err
	}
	storage.Construct(slot)
	return nil
}

// Insert inserts a copy of v before index i.
func Insert[T any, K traits.CopyMove, A any](a *Array[T, K, A], i int, v T) error {
	slot, err := a.gap("insert", i)
	if err != nil {
		return err
	}
	storage.CopyInto(slot, &v)
	return nil
}

// InsertMove moves *v in before index i.
func InsertMove[T any, K traits.Move, A any](a *Array[T, K, A], i int, v *T) error {
	slot, err := a.gap("insert", i)
	if err != nil {
		return err
	}
	storage.MoveInto(slot, v)
	return nil
}

// Erase destructs element i and shifts the rest down. An out-of-range i is
// ignored.
func Erase[T any, K traits.Move, A any](a *Array[T, K, A], i int) {
	EraseRange(a, i, i)
}

// EraseRange destructs the elements start through stop, inclusive. A range
// not fully inside the array is ignored.
func EraseRange[T any, K traits.Move, A any](a *Array[T, K, A], start, stop int) {
	n := a.mem.Len()
	if start < 0 || stop >= n || start > stop {
		return
	}
	buf := a.mem.Raw()
	storage.DestroyAll(buf[start : stop+1])
	storage.Shift(buf, stop+1, start, n-stop-1)
	a.mem.SetLen(n - (stop - start + 1))
}

// ResizeDefault makes sure the array holds at least n elements.
func ResizeDefault[T any, K traits.Default, A any](a *Array[T, K, A], n int) error {
	size := a.mem.Len()
	if n <= size {
		return nil
	}
	if err := a.fits("resize", n); err != nil {
		return err
	}
	storage.ConstructAll(a.mem.Raw()[size:n])
	a.mem.SetLen(n)
	return nil
}

// Resize makes sure the array holds at least n elements, filling with
// copies of v.
func Resize[T any, K traits.Copy, A any](a *Array[T, K, A], v T, n int) error {
	size := a.mem.Len()
	if n <= size {
		return nil
	}
	if err := a.fits("resize", n); err != nil {
		return err
	}
	storage.FillCopies(a.mem.Raw()[size:n], &v)
	a.mem.SetLen(n)
	return nil
}

// HardResizeDefault leaves exactly n elements, destructing surplus ones or
// appending default-constructed ones.
func HardResizeDefault[T any, K traits.Default, A any](a *Array[T, K, A], n int) error {
	if err := a.fits("hard resize", n); err != nil {
		return err
	}
	a.mem.Truncate(n)
	return ResizeDefault(a, n)
}

// HardResize leaves exactly n elements, filling with copies of v.
func HardResize[T any, K traits.Copy, A any](a *Array[T, K, A], v T, n int) error {
	if err := a.fits("hard resize", n); err != nil {
		return err
	}
	a.mem.Truncate(n)
	return Resize(a, v, n)
}

// Extend appends copies of the elements of src to dst. src may be dst.
func Extend[T any, K traits.Copy, A any](dst, src *Array[T, K, A]) error {
	n, m := dst.mem.Len(), src.mem.Len()
	if err := dst.fits("extend", n+m); err != nil {
		return err
	}
	storage.CopyAll(dst.mem.Raw()[n:n+m], src.mem.Raw()[:m])
	dst.mem.SetLen(n + m)
	return nil
}

// ExtendMove moves the elements of src to the back of dst and leaves src
// empty.
func ExtendMove[T any, K traits.Move, A any](dst, src *Array[T, K, A]) error {
	if dst == src {
		return nil
	}
	n, m := dst.mem.Len(), src.mem.Len()
	if err := dst.fits("extend", n+m); err != nil {
		return err
	}
	storage.Relocate(dst.mem.Raw()[n:n+m], src.mem.Live())
	dst.mem.SetLen(n + m)
	src.mem.SetLen(0)
	return nil
}

// Clone returns a deep copy of src.
func Clone[T any, K traits.Copy, A any](src *Array[T, K, A]) *Array[T, K, A] {
	a := New[T, K, A]()
	Assign(a, src)
	return a
}

// Assign replaces the contents of dst with copies of the elements of src.
func Assign[T any, K traits.Copy, A any](dst, src *Array[T, K, A]) {
	if dst == src {
		return
	}
	dst.Clear()
	n := src.mem.Len()
	storage.CopyAll(dst.mem.Raw()[:n], src.mem.Live())
	dst.mem.SetLen(n)
}

// Take moves the elements of src into a new array and leaves src empty.
func Take[T any, K traits.Move, A any](src *Array[T, K, A]) *Array[T, K, A] {
	a := New[T, K, A]()
	MoveTo(a, src)
	return a
}

// MoveTo destructs the contents of dst and moves the elements of src into
// it, leaving src empty.
func MoveTo[T any, K traits.Move, A any](dst, src *Array[T, K, A]) {
	if dst == src {
		return
	}
	dst.Clear()
	n := src.mem.Len()
	storage.Relocate(dst.mem.Raw()[:n], src.mem.Live())
	dst.mem.SetLen(n)
	src.mem.SetLen(0)
}
