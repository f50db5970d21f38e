package list

import (
	"math/rand"
	"os"
	"slices"
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// checkInvariants walks the chain both ways and verifies it against size.
func checkInvariants[T any, K traits.Kind](t *testing.T, l *List[T, K]) {
	t.Helper()
	c := l.chain()
	if c.size == 0 {
		require.Nil(t, c.head)
		require.Nil(t, c.tail)
		return
	}
	require.Nil(t, c.head.prev)
	require.Nil(t, c.tail.next)
	n := 0
	var prev *link[T]
	for lk := c.head; lk != nil; lk = lk.next {
		require.Same(t, prev, lk.prev)
		require.Same(t, c, lk.owner)
		prev = lk
		n++
	}
	require.Same(t, c.tail, prev)
	require.Equal(t, c.size, n)
}

func contents[T any, K traits.Kind](l *List[T, K]) []T {
	var out []T
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

type resource struct {
	id    int
	freed *int
}

func (r *resource) Destroy() {
	if r.freed != nil {
		*r.freed++
	}
}

func TestPushPop(t *testing.T) {
	l := New[int, traits.DCM]()
	PushBack(l, 2)
	PushFront(l, 1)
	PushBackDefault(l)
	PushFrontDefault(l)
	v := 9
	PushBackMove(l, &v)
	assert.Equal(t, 0, v)
	assert.Equal(t, []int{0, 1, 2, 0, 9}, contents(l))
	checkInvariants(t, l)

	l.PopFront()
	l.PopBack()
	assert.Equal(t, []int{1, 2, 0}, contents(l))
	assert.Equal(t, 1, *l.First())
	assert.Equal(t, 0, *l.Last())
	checkInvariants(t, l)

	for !l.Empty() {
		l.PopBack()
	}
	l.PopBack()
	l.PopFront()
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	checkInvariants(t, l)
}

func TestZeroValue(t *testing.T) {
	var l List[string, traits.C]
	assert.True(t, l.Empty())
	PushBack(&l, "a")
	assert.Equal(t, []string{"a"}, contents(&l))
}

func TestInsertMatchesPush(t *testing.T) {
	a := FromSlice[int, traits.DCM]([]int{1, 2, 3})
	b := FromSlice[int, traits.DCM]([]int{1, 2, 3})

	require.NoError(t, Insert(a, a.Size(), 4))
	PushBack(b, 4)
	require.NoError(t, Insert(a, 0, 0))
	PushFront(b, 0)
	assert.Equal(t, contents(b), contents(a))

	require.NoError(t, Insert(a, 2, 7))
	require.NoError(t, InsertDefault(a, 5))
	v := 8
	require.NoError(t, InsertMove(a, 4, &v))
	assert.Equal(t, []int{0, 1, 7, 2, 8, 3, 0, 4}, contents(a))
	checkInvariants(t, a)

	err := Insert(a, 9, 1)
	assert.True(t, errors.Is(err, errs.ErrOutOfRange))
	var ie *errs.IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 8, ie.Size)

	w := 5
	assert.Error(t, InsertMove(a, -1, &w))
	assert.Equal(t, 5, w)
}

func TestEraseAt(t *testing.T) {
	l := FromSlice[int, traits.C]([]int{0, 1, 2, 3, 4})
	l.EraseAt(5)
	l.EraseAt(-1)
	assert.Equal(t, 5, l.Size())
	l.EraseAt(3)
	l.EraseAt(0)
	assert.Equal(t, []int{1, 2, 4}, contents(l))
	for l.Size() > 0 {
		l.EraseAt(0)
	}
	checkInvariants(t, l)
}

func TestAt(t *testing.T) {
	l := FromSlice[int, traits.C]([]int{10, 20, 30, 40, 50})
	for i := 0; i < 5; i++ {
		p, err := l.At(i)
		require.NoError(t, err)
		assert.Equal(t, (i+1)*10, *p)
	}
	_, err := l.At(5)
	assert.True(t, errors.Is(err, errs.ErrOutOfRange))
}

func TestIterators(t *testing.T) {
	l := FromSlice[int, traits.C]([]int{1, 2, 3, 4})

	var fwd []int
	for it := l.Begin(); !it.Equal(l.End()); it.Next() {
		fwd = append(fwd, *it.Value())
	}
	assert.Equal(t, []int{1, 2, 3, 4}, fwd)

	var cfwd []int
	for it := l.CBegin(); !it.End(); it.Next() {
		cfwd = append(cfwd, it.Get())
	}
	assert.Equal(t, fwd, cfwd)

	var rev []int
	for it := l.RBegin(); !it.Equal(l.REnd()); it.Next() {
		rev = append(rev, *it.Value())
	}
	assert.Equal(t, []int{4, 3, 2, 1}, rev)

	var crev []int
	for it := l.CRBegin(); !it.End(); it.Next() {
		crev = append(crev, it.Get())
	}
	assert.Equal(t, rev, crev)

	it := l.Begin()
	it.Advance(2)
	assert.Equal(t, 3, *it.Value())
	it.Retreat(1)
	assert.Equal(t, 2, *it.Value())
	it.Advance(5)
	assert.True(t, it.End())
	assert.Nil(t, it.Value())
	it.Prev()
	assert.Equal(t, 4, *it.Value())

	r := l.REnd()
	r.Prev()
	assert.Equal(t, 1, *r.Value())
	r.Advance(-2)
	assert.Equal(t, 3, *r.Value())
	require.NoError(t, Set(l, r, 30))
	assert.Equal(t, []int{1, 2, 30, 4}, contents(l))

	ce := l.CEnd()
	ce.Prev()
	assert.Equal(t, 4, ce.Get())
	cr := l.CREnd()
	cr.Retreat(1)
	assert.Equal(t, 1, cr.Get())
	assert.Equal(t, 0, l.CREnd().Get())
}

func TestEraseThroughIterators(t *testing.T) {
	freed := 0
	l := New[resource, traits.M]()
	for i := 0; i < 6; i++ {
		r := resource{id: i, freed: &freed}
		PushBackMove(l, &r)
	}

	it := l.Begin()
	it.Advance(2)
	stale := it
	require.NoError(t, l.Erase(it))
	assert.Equal(t, 1, freed)
	assert.False(t, stale.Valid())
	assert.True(t, errors.Is(l.Erase(stale), errs.ErrInvalidIterator))
	assert.True(t, errors.Is(l.Erase(l.End()), errs.ErrInvalidIterator))
	fresh := resource{id: 7, freed: &freed}
	assert.True(t, errors.Is(SetMove(l, stale, &fresh), errs.ErrInvalidIterator))
	assert.Equal(t, 7, fresh.id, "a failed SetMove leaves its source alone")

	cr := l.CRBegin()
	require.NoError(t, l.Erase(cr))
	assert.Equal(t, 4, l.Size())
	checkInvariants(t, l)

	other := New[resource, traits.M]()
	r := resource{id: 99}
	PushBackMove(other, &r)
	assert.True(t, errors.Is(l.Erase(other.Begin()), errs.ErrInvalidIterator))

	var ids []int
	for _, v := range l.All() {
		ids = append(ids, v.id)
	}
	assert.Equal(t, []int{0, 1, 3, 4}, ids)
}

type buffer struct{ data []int }

func (b buffer) Clone() buffer { return buffer{data: slices.Clone(b.data)} }

func TestSetCopiesThroughCloner(t *testing.T) {
	a := FromSlice[buffer, traits.C]([]buffer{{data: []int{1}}})
	b := FromSlice[buffer, traits.C]([]buffer{{data: []int{0}}, {data: []int{0}}})

	it := b.Begin()
	require.NoError(t, Set(b, it, *a.First()))
	r := b.RBegin()
	require.NoError(t, Set(b, r, *a.First()))

	a.First().data[0] = 42
	assert.Equal(t, []int{1}, b.First().data)
	assert.Equal(t, []int{1}, b.Last().data)
	assert.NotSame(t, &b.First().data[0], &b.Last().data[0])

	assert.True(t, errors.Is(Set(a, it, buffer{}), errs.ErrInvalidIterator),
		"a position from another list is rejected")
}

func TestSetMoveDestructsOld(t *testing.T) {
	freed := 0
	l := New[resource, traits.M]()
	old := resource{id: 1, freed: &freed}
	PushBackMove(l, &old)

	next := resource{id: 2, freed: &freed}
	require.NoError(t, SetMove(l, l.Begin(), &next))
	assert.Equal(t, 1, freed)
	assert.Equal(t, resource{}, next)
	assert.Equal(t, 2, l.First().id)
	checkInvariants(t, l)
}

func TestEraseUntilAndFrom(t *testing.T) {
	l := FromSlice[int, traits.C]([]int{0, 1, 2, 3, 4, 5, 6})

	it := l.Begin()
	it.Advance(1)
	require.NoError(t, l.EraseUntil(it))
	assert.Equal(t, []int{2, 3, 4, 5, 6}, contents(l))

	r := l.RBegin()
	r.Advance(1)
	require.NoError(t, l.EraseFrom(r))
	assert.Equal(t, []int{2, 3, 4}, contents(l))

	// A reverse position still cuts in list order.
	r = l.RBegin()
	r.Next()
	require.NoError(t, l.EraseUntil(r))
	assert.Equal(t, []int{4}, contents(l))

	require.NoError(t, l.EraseFrom(l.CBegin()))
	assert.True(t, l.Empty())
	checkInvariants(t, l)

	assert.True(t, errors.Is(l.EraseUntil(l.End()), errs.ErrInvalidIterator))
	assert.True(t, errors.Is(l.EraseFrom(l.REnd()), errs.ErrInvalidIterator))
}

func TestResize(t *testing.T) {
	l := FromSlice[int, traits.DC]([]int{1})
	ResizeDefault(l, 3)
	assert.Equal(t, []int{1, 0, 0}, contents(l))
	Resize(l, 5, 4)
	assert.Equal(t, []int{1, 0, 0, 5}, contents(l))
	ResizeDefault(l, 1)
	assert.Equal(t, []int{1}, contents(l))
	checkInvariants(t, l)
}

func TestCopyAndMove(t *testing.T) {
	src := Repeat[int, traits.CM](7, 3)
	cp := Clone(src)
	*cp.First() = 1
	assert.Equal(t, []int{7, 7, 7}, contents(src))
	assert.Equal(t, []int{1, 7, 7}, contents(cp))

	dst := FromSlice[int, traits.CM]([]int{9})
	Assign(dst, cp)
	assert.Equal(t, []int{1, 7, 7}, contents(dst))

	it := src.Begin()
	mv := Take(src)
	assert.True(t, src.Empty())
	assert.Equal(t, 3, mv.Size())
	require.NoError(t, mv.Erase(it), "iterators follow their elements")
	assert.Equal(t, 2, mv.Size())

	MoveTo(dst, mv)
	assert.True(t, mv.Empty())
	assert.Equal(t, []int{7, 7}, contents(dst))
	checkInvariants(t, dst)
	checkInvariants(t, mv)
	checkInvariants(t, src)
}

func TestExtend(t *testing.T) {
	a := FromSlice[int, traits.CM]([]int{1, 2})
	b := FromSlice[int, traits.CM]([]int{3})
	Extend(a, b)
	Extend(a, a)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, contents(a))
	assert.Equal(t, []int{3}, contents(b))

	it := b.Begin()
	ExtendMove(a, b)
	assert.True(t, b.Empty())
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 3}, contents(a))
	require.NoError(t, a.Erase(it))
	assert.Equal(t, 6, a.Size())
	checkInvariants(t, a)
	checkInvariants(t, b)

	empty := New[int, traits.CM]()
	ExtendMove(empty, a)
	assert.Equal(t, 6, empty.Size())
	checkInvariants(t, empty)
}

func TestSwapAndBackward(t *testing.T) {
	a := FromSlice[int, traits.C]([]int{1, 2, 3})
	b := New[int, traits.C]()
	it := a.Begin()
	a.Swap(b)
	assert.True(t, a.Empty())
	require.NoError(t, b.Erase(it))

	var got []int
	for i, v := range b.Backward() {
		got = append(got, i, v)
	}
	assert.Equal(t, []int{1, 3, 0, 2}, got)
}

func TestClearDestructsAll(t *testing.T) {
	freed := 0
	l := New[resource, traits.M]()
	for i := 0; i < 4; i++ {
		r := resource{id: i, freed: &freed}
		PushBackMove(l, &r)
	}
	it := l.Begin()
	l.Clear()
	assert.Equal(t, 4, freed)
	assert.False(t, it.Valid())
	checkInvariants(t, l)
	l.Reset()
	assert.Equal(t, 4, freed)
}

// TestAgainstSlice runs random operations against a slice model.
func TestAgainstSlice(t *testing.T) {
	n := getEnvInt("CONTAINERS_TEST_SIZE", 2000)
	rng := rand.New(rand.NewSource(7))
	l := New[int, traits.DCM]()
	var model []int
	for i := 0; i < n; i++ {
		switch op := rng.Intn(5); {
		case op == 0:
			PushBack(l, i)
			model = append(model, i)
		case op == 1:
			PushFront(l, i)
			model = slices.Insert(model, 0, i)
		case op == 2:
			at := rng.Intn(len(model) + 1)
			require.NoError(t, Insert(l, at, i))
			model = slices.Insert(model, at, i)
		case op == 3 && len(model) > 0:
			at := rng.Intn(len(model))
			l.EraseAt(at)
			model = slices.Delete(model, at, at+1)
		case op == 4 && len(model) > 0:
			at := rng.Intn(len(model))
			it := l.Begin()
			it.Advance(at)
			require.NoError(t, l.Erase(it))
			model = slices.Delete(model, at, at+1)
		}
	}
	checkInvariants(t, l)
	require.Equal(t, len(model), l.Size())
	for i, v := range l.All() {
		require.Equal(t, model[i], v, "element %d", i)
	}
}
