// Package traits describes what a container may do with its elements.
//
// Every container in this module takes two type parameters: the element
// type T and a capability kind K. The kind records whether elements may be
// default-constructed (D), copied (C) and moved (M). Operations that need
// one of these capabilities are generic functions whose constraint on K
// names it, so asking a move-only container for a copy is a compile error
// rather than a run-time surprise:
//
//	a := array.New[*os.File, traits.M]()
//	array.PushBackMove(a, &f) // ok
//	array.PushBack(a, f)      // does not compile: traits.M is not traits.Copy
//
// Kinds can only be declared in this package.
package traits

import "strings"

// Flags is the run-time view of a kind.
type Flags struct {
	Default bool
	Copy    bool
	Move    bool
}

// String renders the flags as "DCM" with a dash for every missing one,
// e.g. "-C-" for a copy-only kind.
func (f Flags) String() string {
	var b strings.Builder
	b.WriteByte(pick(f.Default, 'D'))
	b.WriteByte(pick(f.Copy, 'C'))
	b.WriteByte(pick(f.Move, 'M'))
	return b.String()
}

func pick(ok bool, c byte) byte {
	if ok {
		return c
	}
	return '-'
}

// Kind is satisfied by the eight capability kinds declared below.
type Kind interface {
	flags() Flags
}

// Default is satisfied by kinds whose elements can be default-constructed.
type Default interface {
	Kind
	defaultable()
}

// Copy is satisfied by kinds whose elements can be copy-constructed.
type Copy interface {
	Kind
	copyable()
}

// Move is satisfied by kinds whose elements can be move-constructed.
type Move interface {
	Kind
	movable()
}

// DefaultMove requires both D and M, e.g. for inserting a default element
// in front of elements that then have to shift one slot.
type DefaultMove interface {
	Default
	Move
}

// CopyMove requires both C and M.
type CopyMove interface {
	Copy
	Move
}

type canDefault struct{}

func (canDefault) defaultable() {}

type canCopy struct{}

func (canCopy) copyable() {}

type canMove struct{}

func (canMove) movable() {}

// The capability kinds. The letters name the supported operations.
type None struct{}

type D struct{ canDefault }

type C struct{ canCopy }

type M struct{ canMove }

type DC struct {
	canDefault
	canCopy
}

type DM struct {
	canDefault
	canMove
}

type CM struct {
	canCopy
	canMove
}

type DCM struct {
	canDefault
	canCopy
	canMove
}

func (None) flags() Flags { return Flags{} }
func (D) flags() Flags    { return Flags{Default: true} }
func (C) flags() Flags    { return Flags{Copy: true} }
func (M) flags() Flags    { return Flags{Move: true} }
func (DC) flags() Flags   { return Flags{Default: true, Copy: true} }
func (DM) flags() Flags   { return Flags{Default: true, Move: true} }
func (CM) flags() Flags   { return Flags{Copy: true, Move: true} }
func (DCM) flags() Flags  { return Flags{Default: true, Copy: true, Move: true} }

// FlagsOf returns the flags carried by kind K.
func FlagsOf[K Kind]() Flags {
	var k K
	return k.flags()
}

// Control is embedded as the first field of every container. It ties the
// kind to the container type and makes go vet's copylocks check reject
// implicit copies of a container value: copies and moves go through the
// Clone/Assign/Take/MoveTo functions of each container package, which are
// gated on C and M respectively.
type Control[K Kind] struct {
	_      [0]K
	noCopy noCopy
}

// Flags reports the capabilities of the container's element kind.
func (*Control[K]) Flags() Flags {
	return FlagsOf[K]()
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
