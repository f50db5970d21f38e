// Package list implements a doubly-linked sequence.
//
// Pushes and pops at either end and erasure through an iterator are O(1).
// Indexed operations walk from whichever end is nearer. Iterators are
// values; one whose element has been erased reports Valid() == false and is
// rejected by the Erase functions instead of dangling.
package list

import (
	"iter"

	"github.com/makma3d/containers/internal/storage"
	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

// List is a doubly-linked sequence of T whose capabilities are given by K.
// The zero value is an empty list ready to use. A List must not be copied;
// use Clone or Take.
type List[T any, K traits.Kind] struct {
	traits.Control[K]
	c *chain[T]
}

// New creates an empty list.
func New[T any, K traits.Kind]() *List[T, K] {
	return &List[T, K]{c: &chain[T]{}}
}

// Repeat creates a list of n copies of v.
func Repeat[T any, K traits.Copy](v T, n int) *List[T, K] {
	l := New[T, K]()
	for i := 0; i < n; i++ {
		PushBack(l, v)
	}
	return l
}

// FromSlice creates a list holding copies of the elements of s.
func FromSlice[T any, K traits.Copy](s []T) *List[T, K] {
	l := New[T, K]()
	for i := range s {
		PushBack(l, s[i])
	}
	return l
}

func (l *List[T, K]) chain() *chain[T] {
	if l.c == nil {
		l.c = &chain[T]{}
	}
	return l.c
}

// Size returns the number of elements.
func (l *List[T, K]) Size() int { return l.chain().size }

// Empty reports whether the list has no elements.
func (l *List[T, K]) Empty() bool { return l.chain().size == 0 }

// First returns the first element, or nil if the list is empty.
func (l *List[T, K]) First() *T {
	if h := l.chain().head; h != nil {
		return &h.value
	}
	return nil
}

// Last returns the last element, or nil if the list is empty.
func (l *List[T, K]) Last() *T {
	if t := l.chain().tail; t != nil {
		return &t.value
	}
	return nil
}

// At returns a pointer to element i.
func (l *List[T, K]) At(i int) (*T, error) {
	c := l.chain()
	if i < 0 || i >= c.size {
		return nil, errs.OutOfRange(i, c.size)
	}
	return &c.nth(i).value, nil
}

// PopFront destructs the first element. It does nothing on an empty list.
func (l *List[T, K]) PopFront() {
	if c := l.chain(); c.head != nil {
		c.unlink(c.head)
	}
}

// PopBack destructs the last element. It does nothing on an empty list.
func (l *List[T, K]) PopBack() {
	if c := l.chain(); c.tail != nil {
		c.unlink(c.tail)
	}
}

// Clear destructs every element.
func (l *List[T, K]) Clear() { l.chain().clear() }

// Reset is Clear; a list keeps no buffer.
func (l *List[T, K]) Reset() { l.chain().clear() }

// Swap exchanges the contents of l and o. Iterators follow their elements.
func (l *List[T, K]) Swap(o *List[T, K]) {
	l.c, o.c = o.chain(), l.chain()
}

// All iterates over the elements head to tail.
func (l *List[T, K]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for lk := l.chain().head; lk != nil; lk = lk.next {
			if !yield(i, lk.value) {
				return
			}
			i++
		}
	}
}

// Backward iterates over the elements tail to head.
func (l *List[T, K]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		c := l.chain()
		i := c.size - 1
		for lk := c.tail; lk != nil; lk = lk.prev {
			if !yield(i, lk.value) {
				return
			}
			i--
		}
	}
}

// Begin returns an iterator on the first element.
func (l *List[T, K]) Begin() Iterator[T] {
	c := l.chain()
	return Iterator[T]{cursor[T]{c.head, c}}
}

// End returns the iterator past the last element.
func (l *List[T, K]) End() Iterator[T] {
	return Iterator[T]{cursor[T]{nil, l.chain()}}
}

// CBegin returns a read-only iterator on the first element.
func (l *List[T, K]) CBegin() ConstIterator[T] {
	c := l.chain()
	return ConstIterator[T]{cursor[T]{c.head, c}}
}

// CEnd returns the read-only iterator past the last element.
func (l *List[T, K]) CEnd() ConstIterator[T] {
	return ConstIterator[T]{cursor[T]{nil, l.chain()}}
}

// RBegin returns a reverse iterator on the last element.
func (l *List[T, K]) RBegin() ReverseIterator[T] {
	c := l.chain()
	return ReverseIterator[T]{cursor[T]{c.tail, c}}
}

// REnd returns the reverse iterator past the first element.
func (l *List[T, K]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{cursor[T]{nil, l.chain()}}
}

// CRBegin returns a read-only reverse iterator on the last element.
func (l *List[T, K]) CRBegin() ConstReverseIterator[T] {
	c := l.chain()
	return ConstReverseIterator[T]{cursor[T]{c.tail, c}}
}

// CREnd returns the read-only reverse iterator past the first element.
func (l *List[T, K]) CREnd() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{cursor[T]{nil, l.chain()}}
}

// locate returns the link pos stands on if it is a live element of l.
func (l *List[T, K]) locate(op string, pos Position[T]) (*link[T], error) {
	cur := pos.position()
	if !cur.valid() || cur.node.owner != l.chain() {
		return nil, errs.InvalidIterator(op)
	}
	return cur.node, nil
}

// EraseAt destructs element i. An out-of-range i is ignored.
func (l *List[T, K]) EraseAt(i int) {
	c := l.chain()
	if i < 0 || i >= c.size {
		return
	}
	c.unlink(c.nth(i))
}

// Erase destructs the element pos stands on. pos and every copy of it
// become invalid.
func (l *List[T, K]) Erase(pos Position[T]) error {
	lk, err := l.locate("erase", pos)
	if err != nil {
		return err
	}
	l.c.unlink(lk)
	return nil
}

// EraseUntil destructs every element from the head up to and including
// the one pos stands on.
func (l *List[T, K]) EraseUntil(pos Position[T]) error {
	lk, err := l.locate("erase until", pos)
	if err != nil {
		return err
	}
	for {
		h := l.c.head
		l.c.unlink(h)
		if h == lk {
			return nil
		}
	}
}

// EraseFrom destructs every element from the one pos stands on through the
// tail.
func (l *List[T, K]) EraseFrom(pos Position[T]) error {
	lk, err := l.locate("erase from", pos)
	if err != nil {
		return err
	}
	for {
		t := l.c.tail
		l.c.unlink(t)
		if t == lk {
			return nil
		}
	}
}

// Set destructs the element pos stands on and copy-constructs v in its
// place.
func Set[T any, K traits.Copy](l *List[T, K], pos Writable[T], v T) error {
	lk, err := l.locate("set", pos)
	if err != nil {
		return err
	}
	storage.Destroy(&lk.value)
	storage.CopyInto(&lk.value, &v)
	return nil
}

// SetMove destructs the element pos stands on and moves *v into its place,
// leaving *v zero.
func SetMove[T any, K traits.Move](l *List[T, K], pos Writable[T], v *T) error {
	lk, err := l.locate("set", pos)
	if err != nil {
		return err
	}
	storage.Destroy(&lk.value)
	storage.MoveInto(&lk.value, v)
	return nil
}

func pushFront[T any, K traits.Kind](l *List[T, K], build func(*T)) {
	c := l.chain()
	lk := c.newLink()
	build(&lk.value)
	c.linkFront(lk)
}

func pushBack[T any, K traits.Kind](l *List[T, K], build func(*T)) {
	c := l.chain()
	lk := c.newLink()
	build(&lk.value)
	c.linkBack(lk)
}

func insert[T any, K traits.Kind](l *List[T, K], i int, build func(*T)) error {
	c := l.chain()
	if i < 0 || i > c.size {
		return errs.OutOfRange(i, c.size)
	}
	lk := c.newLink()
	build(&lk.value)
	if i == c.size {
		c.linkBack(lk)
		return nil
	}
	c.linkBefore(c.nth(i), lk)
	return nil
}

func copyOf[T any](v *T) func(*T) {
	return func(slot *T) { storage.CopyInto(slot, v) }
}

func moveOf[T any](v *T) func(*T) {
	return func(slot *T) { storage.MoveInto(slot, v) }
}

// PushFrontDefault prepends a default-constructed element.
func PushFrontDefault[T any, K traits.Default](l *List[T, K]) {
	pushFront(l, storage.Construct[T])
}

// PushFront prepends a copy of v.
func PushFront[T any, K traits.Copy](l *List[T, K], v T) {
	pushFront(l, copyOf(&v))
}

// PushFrontMove moves *v to the front, leaving *v zero.
func PushFrontMove[T any, K traits.Move](l *List[T, K], v *T) {
	pushFront(l, moveOf(v))
}

// PushBackDefault appends a default-constructed element.
func PushBackDefault[T any, K traits.Default](l *List[T, K]) {
	pushBack(l, storage.Construct[T])
}

// PushBack appends a copy of v.
func PushBack[T any, K traits.Copy](l *List[T, K], v T) {
	pushBack(l, copyOf(&v))
}

// PushBackMove moves *v to the back, leaving *v zero.
func PushBackMove[T any, K traits.Move](l *List[T, K], v *T) {
	pushBack(l, moveOf(v))
}

// InsertDefault inserts a default-constructed element before index i. i
// may equal Size, which appends.
func InsertDefault[T any, K traits.Default](l *List[T, K], i int) error {
	return insert(l, i, storage.Construct[T])
}

// Insert inserts a copy of v before index i.
func Insert[T any, K traits.Copy](l *List[T, K], i int, v T) error {
	return insert(l, i, copyOf(&v))
}

// InsertMove moves *v in before index i. *v is untouched on error.
func InsertMove[T any, K traits.Move](l *List[T, K], i int, v *T) error {
	return insert(l, i, moveOf(v))
}

// ResizeDefault grows the list to n elements by appending default ones, or
// shrinks it by popping from the back.
func ResizeDefault[T any, K traits.Default](l *List[T, K], n int) {
	for l.Size() < n {
		PushBackDefault(l)
	}
	for l.Size() > n {
		l.PopBack()
	}
}

// Resize is ResizeDefault with copies of v as the new elements.
func Resize[T any, K traits.Copy](l *List[T, K], v T, n int) {
	for l.Size() < n {
		PushBack(l, v)
	}
	for l.Size() > n {
		l.PopBack()
	}
}

// Extend appends copies of the elements of src to dst. src may be dst.
func Extend[T any, K traits.Copy](dst, src *List[T, K]) {
	lk := src.chain().head
	for n := src.chain().size; n > 0; n-- {
		PushBack(dst, lk.value)
		lk = lk.next
	}
}

// ExtendMove splices the elements of src onto the back of dst and leaves
// src empty. The elements are not moved; iterators on them follow them into
// dst.
func ExtendMove[T any, K traits.Move](dst, src *List[T, K]) {
	if dst == src {
		return
	}
	dst.chain().adopt(src.chain())
}

// Clone returns a deep copy of src.
func Clone[T any, K traits.Copy](src *List[T, K]) *List[T, K] {
	l := New[T, K]()
	Extend(l, src)
	return l
}

// Assign replaces the contents of dst with copies of the elements of src.
func Assign[T any, K traits.Copy](dst, src *List[T, K]) {
	if dst == src {
		return
	}
	dst.Clear()
	Extend(dst, src)
}

// Take moves the elements of src into a new list and leaves src empty.
func Take[T any, K traits.Move](src *List[T, K]) *List[T, K] {
	l := &List[T, K]{c: src.chain()}
	src.c = &chain[T]{}
	return l
}

// MoveTo destructs the contents of dst and moves those of src into it,
// leaving src empty.
func MoveTo[T any, K traits.Move](dst, src *List[T, K]) {
	if dst == src {
		return
	}
	dst.Clear()
	dst.c = src.chain()
	src.c = &chain[T]{}
}
