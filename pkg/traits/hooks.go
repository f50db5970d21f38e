package traits

import "reflect"

// Element types may implement any of the hooks below to take part in the
// containers' explicit lifecycle management. A type without hooks is
// default-constructed as its zero value, copied and moved by assignment and
// destroyed by zeroing its slot.

// Initializer is implemented by *T when a default-constructed element needs
// more than the zero value.
type Initializer interface {
	Init()
}

// Cloner is implemented by T (or *T) when a copy has to be deeper than
// assignment, e.g. to duplicate an owned buffer. A pointer element type
// such as *Buf implements it with func (*Buf) Clone() *Buf; a nil element
// is copied as nil without calling the hook.
type Cloner[T any] interface {
	Clone() T
}

// Mover is implemented by *T when moving src into the receiver has to do
// more than copying its bytes. The container zeroes src afterwards. The
// receiver is always an empty slot, so pointer element types move by
// assignment.
type Mover[T any] interface {
	MoveFrom(src *T)
}

// Destroyer is implemented by *T, or by T when T is a pointer type, when an
// element owns something that has to be released before its slot is
// reused. Nil elements are not destroyed.
type Destroyer interface {
	Destroy()
}

// valueHooks reports whether hooks have to be looked up on T values as
// well: the methods of a pointer or interface type T are not in the method
// set of *T.
func valueHooks[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}

// valueHook returns the hook H of the element *p itself. Nil elements have
// no hooks.
func valueHook[H, T any](p *T) (H, bool) {
	var none H
	if !valueHooks[T]() {
		return none, false
	}
	var zero T
	v := any(*p)
	if v == any(zero) {
		return none, false
	}
	h, ok := v.(H)
	return h, ok
}

// implements reports whether T values can carry hook H. For an interface
// type T that depends on the dynamic value, so the answer is yes.
func implements[H, T any]() bool {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Pointer:
		return t.Implements(reflect.TypeFor[H]())
	}
	return false
}

// ClonerOf returns the Cloner hook of the element at p.
func ClonerOf[T any](p *T) (Cloner[T], bool) {
	if c, ok := any(p).(Cloner[T]); ok {
		return c, true
	}
	return valueHook[Cloner[T]](p)
}

// DestroyerOf returns the Destroyer hook of the element at p.
func DestroyerOf[T any](p *T) (Destroyer, bool) {
	if d, ok := any(p).(Destroyer); ok {
		return d, true
	}
	return valueHook[Destroyer](p)
}

// Relocatable reports whether elements of type T can be relocated with a
// bulk memory copy: *T has neither a Mover nor a Destroyer hook, so moving
// a run of elements is indistinguishable from copying their bytes. Hooks
// of a pointer T do not matter here since relocation neither clones nor
// destroys.
func Relocatable[T any]() bool {
	var p *T
	if _, ok := any(p).(Mover[T]); ok {
		return false
	}
	if _, ok := any(p).(Destroyer); ok {
		return false
	}
	return true
}

// Clonable reports whether T may have a Cloner hook.
func Clonable[T any]() bool {
	var p *T
	if _, ok := any(p).(Cloner[T]); ok {
		return true
	}
	return implements[Cloner[T], T]()
}

// Destructible reports whether T may have a Destroyer hook.
func Destructible[T any]() bool {
	var p *T
	if _, ok := any(p).(Destroyer); ok {
		return true
	}
	return implements[Destroyer, T]()
}
