package list

import "github.com/makma3d/containers/internal/storage"

// link holds one element. owner is the chain the link belongs to and is
// cleared when the link is removed, which is how iterators notice that
// their element is gone.
type link[T any] struct {
	value      T
	next, prev *link[T]
	owner      *chain[T]
}

// chain is the storage of a list: the two ends and the element count.
type chain[T any] struct {
	head, tail *link[T]
	size       int
}

func (c *chain[T]) newLink() *link[T] {
	return &link[T]{owner: c}
}

// linkFront splices lk in as the new head.
func (c *chain[T]) linkFront(lk *link[T]) {
	lk.next = c.head
	if c.head != nil {
		c.head.prev = lk
	} else {
		c.tail = lk
	}
	c.head = lk
	c.size++
}

// linkBack splices lk in as the new tail.
func (c *chain[T]) linkBack(lk *link[T]) {
	lk.prev = c.tail
	if c.tail != nil {
		c.tail.next = lk
	} else {
		c.head = lk
	}
	c.tail = lk
	c.size++
}

// linkBefore splices lk in front of at, which must be in c.
func (c *chain[T]) linkBefore(at, lk *link[T]) {
	if at == c.head {
		c.linkFront(lk)
		return
	}
	lk.prev, lk.next = at.prev, at
	at.prev.next = lk
	at.prev = lk
	c.size++
}

// unlink detaches lk, destructs its element and disowns it.
func (c *chain[T]) unlink(lk *link[T]) {
	if lk.prev != nil {
		lk.prev.next = lk.next
	} else {
		c.head = lk.next
	}
	if lk.next != nil {
		lk.next.prev = lk.prev
	} else {
		c.tail = lk.prev
	}
	storage.Destroy(&lk.value)
	lk.next, lk.prev, lk.owner = nil, nil, nil
	c.size--
}

// nth returns link i, walking from whichever end is nearer.
func (c *chain[T]) nth(i int) *link[T] {
	if i < c.size/2 {
		lk := c.head
		for ; i > 0; i-- {
			lk = lk.next
		}
		return lk
	}
	lk := c.tail
	for j := c.size - 1; j > i; j-- {
		lk = lk.prev
	}
	return lk
}

// clear unlinks every element, head first.
func (c *chain[T]) clear() {
	for c.head != nil {
		c.unlink(c.head)
	}
}

// adopt moves every link of src to the back of c and leaves src empty.
func (c *chain[T]) adopt(src *chain[T]) {
	if src.head == nil {
		return
	}
	for lk := src.head; lk != nil; lk = lk.next {
		lk.owner = c
	}
	if c.tail == nil {
		c.head = src.head
	} else {
		c.tail.next = src.head
		src.head.prev = c.tail
	}
	c.tail = src.tail
	c.size += src.size
	src.head, src.tail, src.size = nil, nil, 0
}
