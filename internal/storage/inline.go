package storage

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Inline keeps its elements inside the value itself. A must be an array
// type [N]T; N is the capacity. The zero value is empty and ready to use.
//
// Inline must not be copied after first use: the views it hands out point
// into the value.
type Inline[T any, A any] struct {
	elems A
	size  int
}

// shapeKey identifies one (T, A) instantiation without reflection.
type shapeKey struct{ elem, array any }

// shapes caches the validated N of every instantiation seen so far.
var shapes sync.Map // shapeKey -> int

// InlineCap returns N for A = [N]T and panics if A has any other shape. The
// shape is checked on the first call for each T and A.
func InlineCap[T any, A any]() int {
	key := shapeKey{(*T)(nil), (*A)(nil)}
	if n, ok := shapes.Load(key); ok {
		return n.(int)
	}
	at, et := reflect.TypeFor[A](), reflect.TypeFor[T]()
	if at.Kind() != reflect.Array || at.Elem() != et {
		panic(errors.AssertionFailedf("inline storage of %s needs an array of %s", at, et))
	}
	shapes.Store(key, at.Len())
	return at.Len()
}

// Len returns the number of live elements.
func (s *Inline[T, A]) Len() int { return s.size }

// Cap returns N.
func (s *Inline[T, A]) Cap() int { return InlineCap[T, A]() }

// Raw returns all N slots.
func (s *Inline[T, A]) Raw() []T {
	n := InlineCap[T, A]()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&s.elems)), n)
}

// Live returns the live elements.
func (s *Inline[T, A]) Live() []T { return s.Raw()[:s.size] }

// SetLen sets the live count without touching any slot.
func (s *Inline[T, A]) SetLen(n int) { s.size = n }

// Truncate destructs the elements from n on.
func (s *Inline[T, A]) Truncate(n int) {
	if n >= s.size {
		return
	}
	DestroyAll(s.Raw()[n:s.size])
	s.size = n
}
