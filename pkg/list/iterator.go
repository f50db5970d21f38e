package list

// cursor is the state shared by the four iterator variants: the link it
// stands on (nil past either end) and the chain it was taken from, which is
// only needed to step back in from the end.
type cursor[T any] struct {
	node  *link[T]
	chain *chain[T]
}

// valid reports whether the cursor stands on an element still in a list.
func (c cursor[T]) valid() bool {
	return c.node != nil && c.node.owner != nil
}

// toward steps one link toward the tail. Past the tail it stays at the end.
func (c *cursor[T]) toward() {
	if c.node != nil {
		c.node = c.node.next
	}
}

// away steps one link toward the head. From the end position it moves onto
// the tail.
func (c *cursor[T]) away() {
	if c.node == nil {
		if c.chain != nil {
			c.node = c.chain.tail
		}
		return
	}
	c.node = c.node.prev
}

// rtoward and raway are toward and away seen from the tail.
func (c *cursor[T]) rtoward() {
	if c.node != nil {
		c.node = c.node.prev
	}
}

func (c *cursor[T]) raway() {
	if c.node == nil {
		if c.chain != nil {
			c.node = c.chain.head
		}
		return
	}
	c.node = c.node.next
}

func repeat(n int, fwd, back func()) {
	for ; n > 0; n-- {
		fwd()
	}
	for ; n < 0; n++ {
		back()
	}
}

func (c cursor[T]) value() *T {
	if c.node == nil {
		return nil
	}
	return &c.node.value
}

func (c cursor[T]) get() T {
	if c.node == nil {
		var zero T
		return zero
	}
	return c.node.value
}

// Position is implemented by the four iterator variants; any of them can be
// handed to the Erase functions.
type Position[T any] interface {
	position() cursor[T]
}

// Writable is implemented by Iterator and ReverseIterator, the positions
// Set and SetMove accept.
type Writable[T any] interface {
	Position[T]
	writable()
}

// Iterator walks a list from head to tail and gives write access to the
// elements.
type Iterator[T any] struct{ cur cursor[T] }

// Next steps toward the tail.
func (it *Iterator[T]) Next() { it.cur.toward() }

// Prev steps toward the head; from End it moves onto the last element.
func (it *Iterator[T]) Prev() { it.cur.away() }

// Advance takes n steps toward the tail. A negative n steps back.
func (it *Iterator[T]) Advance(n int) { repeat(n, it.cur.toward, it.cur.away) }

// Retreat takes n steps toward the head.
func (it *Iterator[T]) Retreat(n int) { it.Advance(-n) }

// Equal reports whether both iterators stand on the same link.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.cur.node == o.cur.node }

// End reports whether the iterator is past the last element.
func (it Iterator[T]) End() bool { return it.cur.node == nil }

// Valid reports whether the iterator stands on an element still in its list.
func (it Iterator[T]) Valid() bool { return it.cur.valid() }

// Value returns the element, or nil at the end.
func (it Iterator[T]) Value() *T { return it.cur.value() }

func (it Iterator[T]) position() cursor[T] { return it.cur }
func (it Iterator[T]) writable()           {}

// ConstIterator walks a list from head to tail without write access.
type ConstIterator[T any] struct{ cur cursor[T] }

func (it *ConstIterator[T]) Next()         { it.cur.toward() }
func (it *ConstIterator[T]) Prev()         { it.cur.away() }
func (it *ConstIterator[T]) Advance(n int) { repeat(n, it.cur.toward, it.cur.away) }
func (it *ConstIterator[T]) Retreat(n int) { it.Advance(-n) }

func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.cur.node == o.cur.node }
func (it ConstIterator[T]) End() bool                     { return it.cur.node == nil }
func (it ConstIterator[T]) Valid() bool                   { return it.cur.valid() }

// Get returns a copy of the element, or the zero value at the end.
func (it ConstIterator[T]) Get() T { return it.cur.get() }

func (it ConstIterator[T]) position() cursor[T] { return it.cur }

// ReverseIterator walks a list from tail to head with write access.
type ReverseIterator[T any] struct{ cur cursor[T] }

// Next steps toward the head.
func (it *ReverseIterator[T]) Next() { it.cur.rtoward() }

// Prev steps toward the tail; from REnd it moves onto the first element.
func (it *ReverseIterator[T]) Prev() { it.cur.raway() }

func (it *ReverseIterator[T]) Advance(n int) { repeat(n, it.cur.rtoward, it.cur.raway) }
func (it *ReverseIterator[T]) Retreat(n int) { it.Advance(-n) }

func (it ReverseIterator[T]) Equal(o ReverseIterator[T]) bool { return it.cur.node == o.cur.node }
func (it ReverseIterator[T]) End() bool                       { return it.cur.node == nil }
func (it ReverseIterator[T]) Valid() bool                     { return it.cur.valid() }
func (it ReverseIterator[T]) Value() *T                       { return it.cur.value() }

func (it ReverseIterator[T]) position() cursor[T] { return it.cur }
func (it ReverseIterator[T]) writable()           {}

// ConstReverseIterator walks a list from tail to head without write access.
type ConstReverseIterator[T any] struct{ cur cursor[T] }

func (it *ConstReverseIterator[T]) Next()         { it.cur.rtoward() }
func (it *ConstReverseIterator[T]) Prev()         { it.cur.raway() }
func (it *ConstReverseIterator[T]) Advance(n int) { repeat(n, it.cur.rtoward, it.cur.raway) }
func (it *ConstReverseIterator[T]) Retreat(n int) { it.Advance(-n) }

func (it ConstReverseIterator[T]) Equal(o ConstReverseIterator[T]) bool {
	return it.cur.node == o.cur.node
}
func (it ConstReverseIterator[T]) End() bool   { return it.cur.node == nil }
func (it ConstReverseIterator[T]) Valid() bool { return it.cur.valid() }
func (it ConstReverseIterator[T]) Get() T      { return it.cur.get() }

func (it ConstReverseIterator[T]) position() cursor[T] { return it.cur }
