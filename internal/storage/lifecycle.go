package storage

import "github.com/makma3d/containers/pkg/traits"

// A slot past a container's size always holds the zero value of T. The
// functions below move elements in and out of slots and keep that true:
// whatever they leave behind in a vacated slot is zero.

// Construct default-constructs the element in slot.
func Construct[T any](slot *T) {
	var zero T
	*slot = zero
	if i, ok := any(slot).(traits.Initializer); ok {
		i.Init()
	}
}

// CopyInto copy-constructs *src into the empty slot dst.
func CopyInto[T any](dst, src *T) {
	if c, ok := traits.ClonerOf(src); ok {
		*dst = c.Clone()
		return
	}
	*dst = *src
}

// MoveInto move-constructs *src into the empty slot dst and zeroes src.
func MoveInto[T any](dst, src *T) {
	if m, ok := any(dst).(traits.Mover[T]); ok {
		m.MoveFrom(src)
	} else {
		*dst = *src
	}
	var zero T
	*src = zero
}

// Destroy destructs the element in slot and zeroes it.
func Destroy[T any](slot *T) {
	if d, ok := traits.DestroyerOf(slot); ok {
		d.Destroy()
	}
	var zero T
	*slot = zero
}

// ConstructAll default-constructs every slot of s.
func ConstructAll[T any](s []T) {
	if _, ok := any((*T)(nil)).(traits.Initializer); !ok {
		clear(s)
		return
	}
	for i := range s {
		Construct(&s[i])
	}
}

// FillCopies copy-constructs v into every slot of s.
func FillCopies[T any](s []T, v *T) {
	for i := range s {
		CopyInto(&s[i], v)
	}
}

// CopyAll copy-constructs src into the empty slots of dst. The slices must
// have the same length and must not overlap.
func CopyAll[T any](dst, src []T) {
	if !traits.Clonable[T]() {
		copy(dst, src)
		return
	}
	for i := range src {
		CopyInto(&dst[i], &src[i])
	}
}

// DestroyAll destructs every element of s.
func DestroyAll[T any](s []T) {
	if !traits.Destructible[T]() {
		clear(s)
		return
	}
	for i := range s {
		Destroy(&s[i])
	}
}

// Relocate moves the elements of src into the empty slots of dst and
// zeroes src. The slices must have the same length and must not overlap.
func Relocate[T any](dst, src []T) {
	if traits.Relocatable[T]() {
		copy(dst, src)
		clear(src)
		return
	}
	for i := range src {
		MoveInto(&dst[i], &src[i])
	}
}

// Shift moves the n elements starting at from so that they start at to,
// inside one buffer. Slots that end up outside the destination range are
// zeroed; the destination slots not covered by the source must be empty.
func Shift[T any](buf []T, from, to, n int) {
	if n == 0 || from == to {
		return
	}
	if traits.Relocatable[T]() {
		copy(buf[to:to+n], buf[from:from+n])
		if to > from {
			clear(buf[from:min(to, from+n)])
		} else {
			clear(buf[max(to+n, from) : from+n])
		}
		return
	}
	if to > from {
		for i := n - 1; i >= 0; i-- {
			MoveInto(&buf[to+i], &buf[from+i])
		}
		return
	}
	for i := 0; i < n; i++ {
		MoveInto(&buf[to+i], &buf[from+i])
	}
}
