package array

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

// getEnvInt returns the value of the env variable key or def if unset.
func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// checkInvariants verifies the size/capacity invariant and that the slots
// past the size hold the zero value.
func checkInvariants[T comparable, K traits.Kind](t *testing.T, a *Array[T, K]) {
	t.Helper()
	require.LessOrEqual(t, a.Size(), a.Cap())
	require.Equal(t, a.Size() == 0, a.Empty())
	var zero T
	for i, v := range a.Raw()[a.Size():] {
		require.Equal(t, zero, v, "slot %d past size is not empty", a.Size()+i)
	}
}

func contents[T any, K traits.Kind](a *Array[T, K]) []T {
	var out []T
	for _, v := range a.All() {
		out = append(out, v)
	}
	return out
}

// boxed relocates through its Mover hook, so arrays of it take the
// element-wise paths.
type boxed struct{ v int }

func (b *boxed) MoveFrom(src *boxed) { *b = *src }

// resource counts destructions through a shared counter.
type resource struct {
	id    int
	freed *int
}

func (r *resource) Destroy() {
	if r.freed != nil {
		*r.freed++
	}
}

// buffer owns a slice that copies must not share.
type buffer struct{ data []int }

func (b buffer) Clone() buffer { return buffer{data: slices.Clone(b.data)} }

// page is used through pointers; *page elements clone via (*page).Clone.
type page struct{ data []int }

func (p *page) Clone() *page { return &page{data: slices.Clone(p.data)} }

// conn is used through pointers and counts its closes.
type conn struct{ closed *int }

func (c *conn) Destroy() { *c.closed++ }

func TestPointerElementsUseHooks(t *testing.T) {
	a := New[*page, traits.DCM]()
	orig := &page{data: []int{1, 2}}
	require.NoError(t, PushBack(a, orig))
	require.NoError(t, PushBack(a, nil))
	assert.NotSame(t, orig, *a.Index(0), "PushBack clones")

	c := Clone(a)
	assert.NotSame(t, *a.Index(0), *c.Index(0))
	assert.Nil(t, *c.Index(1))
	(*a.Index(0)).data[0] = 42
	assert.Equal(t, []int{1, 2}, (*c.Index(0)).data)

	f := FromSlice[*page, traits.C]([]*page{orig})
	assert.NotSame(t, orig, *f.Index(0))

	d := New[*page, traits.DCM]()
	require.NoError(t, Extend(d, c))
	assert.NotSame(t, *c.Index(0), *d.Index(0))

	closed := 0
	conns := New[*conn, traits.DCM]()
	for i := 0; i < 3; i++ {
		require.NoError(t, PushBack(conns, &conn{closed: &closed}))
	}
	require.NoError(t, PushBack(conns, nil))
	conns.PopBack()
	assert.Equal(t, 0, closed, "nil elements are not destroyed")
	Erase(conns, 0)
	assert.Equal(t, 1, closed)
	conns.Clear()
	assert.Equal(t, 3, closed)
}

func TestNegativeCapacityIsOutOfMemory(t *testing.T) {
	for name, fn := range map[string]func(){
		"with capacity": func() { WithCapacity[int, traits.DCM](-1) },
		"hard reserve": func() {
			a := FromSlice[int, traits.CM]([]int{1, 2})
			HardReserve(a, -1)
		},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, errs.ErrOutOfMemory))
			}()
			fn()
		})
	}
}

func TestEndToEnd(t *testing.T) {
	a := New[int, traits.DCM]()
	require.NoError(t, PushBack(a, 1))
	require.NoError(t, PushBack(a, 2))
	require.NoError(t, PushFront(a, 0))
	assert.Equal(t, []int{0, 1, 2}, contents(a))
	assert.Equal(t, 3, a.Size())
	checkInvariants(t, a)

	Erase(a, 1)
	assert.Equal(t, []int{0, 2}, contents(a))
	assert.Equal(t, 2, a.Size())
	checkInvariants(t, a)

	a.Reset()
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 0, a.Cap())
}

func TestGrowthPolicy(t *testing.T) {
	exact := New[int, traits.CM]()
	doubling := New[int, traits.CM](WithGrowth(GrowDoubling))
	var exactCaps, doublingCaps []int
	for i := 0; i < 5; i++ {
		require.NoError(t, PushBack(exact, i))
		require.NoError(t, PushBack(doubling, i))
		exactCaps = append(exactCaps, exact.Cap())
		doublingCaps = append(doublingCaps, doubling.Cap())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, exactCaps)
	assert.Equal(t, []int{1, 2, 4, 4, 8}, doublingCaps)
	assert.Equal(t, contents(exact), contents(doubling))
	assert.Equal(t, GrowDoubling, doubling.Growth())
}

func TestParseGrowth(t *testing.T) {
	g, err := ParseGrowth("doubling")
	require.NoError(t, err)
	assert.Equal(t, GrowDoubling, g)
	assert.Equal(t, "doubling", g.String())

	g, err = ParseGrowth("")
	require.NoError(t, err)
	assert.Equal(t, GrowExact, g)

	_, err = ParseGrowth("triple")
	assert.Error(t, err)
}

func TestInsertBounds(t *testing.T) {
	a := FromSlice[int, traits.CM]([]int{1, 2, 3})
	require.NoError(t, Insert(a, 3, 4))
	require.NoError(t, Insert(a, 0, 0))
	require.NoError(t, Insert(a, 2, 9))
	assert.Equal(t, []int{0, 1, 9, 2, 3, 4}, contents(a))

	err := Insert(a, 7, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrOutOfRange))
	var ie *errs.IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 7, ie.Index)
	assert.Equal(t, 6, ie.Size)

	assert.True(t, errors.Is(Insert(a, -1, 5), errs.ErrOutOfRange))
	assert.Equal(t, 6, a.Size())
	checkInvariants(t, a)
}

func TestEraseOutOfRangeIsIgnored(t *testing.T) {
	a := FromSlice[int, traits.CM]([]int{1, 2, 3})
	Erase(a, 3)
	Erase(a, -1)
	EraseRange(a, 1, 5)
	EraseRange(a, 2, 1)
	assert.Equal(t, []int{1, 2, 3}, contents(a))

	EraseRange(a, 0, 1)
	assert.Equal(t, []int{3}, contents(a))
	checkInvariants(t, a)
}

func TestEraseRangeDestructs(t *testing.T) {
	freed := 0
	a := New[resource, traits.M]()
	for i := 0; i < 5; i++ {
		r := resource{id: i, freed: &freed}
		require.NoError(t, PushBackMove(a, &r))
		assert.Equal(t, resource{}, r)
	}
	EraseRange(a, 1, 3)
	assert.Equal(t, 3, freed)
	require.Equal(t, 2, a.Size())
	assert.Equal(t, 0, a.Index(0).id)
	assert.Equal(t, 4, a.Index(1).id)

	PopFront(a)
	a.PopBack()
	a.PopBack()
	assert.Equal(t, 5, freed)
	assert.True(t, a.Empty())
}

func TestFullWithoutMoveIsCapacityError(t *testing.T) {
	a := WithCapacity[int, traits.DC](2)
	require.NoError(t, PushBack(a, 1))
	require.NoError(t, PushBackDefault(a))
	err := PushBack(a, 3)
	assert.True(t, errors.Is(err, errs.ErrCapacity))
	assert.True(t, errors.Is(PushBackDefault(a), errs.ErrCapacity))
	assert.Equal(t, []int{1, 0}, contents(a))
	assert.Equal(t, 2, a.Cap())

	b := FromSlice[int, traits.DC]([]int{7})
	assert.True(t, errors.Is(Extend(a, b), errs.ErrCapacity))
	assert.Equal(t, 2, a.Size())
}

func TestAccess(t *testing.T) {
	a := New[int, traits.DCM]()
	assert.Nil(t, a.First())
	assert.Nil(t, a.Last())
	_, err := a.At(0)
	assert.True(t, errors.Is(err, errs.ErrOutOfRange))

	require.NoError(t, PushBack(a, 10))
	require.NoError(t, PushBack(a, 20))
	p, err := a.At(1)
	require.NoError(t, err)
	*p = 25
	assert.Equal(t, 10, *a.First())
	assert.Equal(t, 25, *a.Last())
	assert.Panics(t, func() { a.Index(2) })

	var back []int
	for i, v := range a.Backward() {
		back = append(back, i, v)
	}
	assert.Equal(t, []int{1, 25, 0, 10}, back)
}

func TestReserve(t *testing.T) {
	a := FromSlice[int, traits.CM]([]int{1, 2, 3})
	Reserve(a, 2)
	assert.Equal(t, 3, a.Cap())
	Reserve(a, 10)
	assert.Equal(t, 10, a.Cap())
	assert.Equal(t, []int{1, 2, 3}, contents(a))
	checkInvariants(t, a)

	Reserve(a, 0)
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 0, a.Cap())
}

func TestHardReserve(t *testing.T) {
	freed := 0
	a := New[resource, traits.M]()
	for i := 0; i < 4; i++ {
		r := resource{id: i, freed: &freed}
		require.NoError(t, PushBackMove(a, &r))
	}
	HardReserve(a, 4)
	assert.Equal(t, 0, freed)

	HardReserve(a, 2)
	assert.Equal(t, 2, freed)
	assert.Equal(t, 2, a.Cap())
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 1, a.Last().id)

	HardReserve(a, 0)
	assert.Equal(t, 4, freed)
	assert.Equal(t, 0, a.Cap())
}

func TestResize(t *testing.T) {
	a := FromSlice[int, traits.DCM]([]int{1, 2})
	Resize(a, 7, 4)
	assert.Equal(t, []int{1, 2, 7, 7}, contents(a))
	Resize(a, 9, 1)
	assert.Equal(t, 4, a.Size())

	ResizeDefault(a, 5)
	assert.Equal(t, []int{1, 2, 7, 7, 0}, contents(a))

	HardResize(a, 3, 2)
	assert.Equal(t, []int{1, 2}, contents(a))
	assert.Equal(t, 2, a.Cap())

	HardResizeDefault(a, 3)
	assert.Equal(t, []int{1, 2, 0}, contents(a))
	assert.Equal(t, 3, a.Cap())

	HardResize(a, 1, 0)
	assert.Equal(t, 0, a.Cap())
	checkInvariants(t, a)
}

func TestRawAccess(t *testing.T) {
	a := WithCapacity[int32, traits.CM](4)
	raw := a.Raw()
	require.Len(t, raw, 4)
	for i := range raw {
		raw[i] = int32(i * i)
	}
	require.NoError(t, a.SetSize(4))
	assert.Equal(t, []int32{0, 1, 4, 9}, a.Data())

	assert.True(t, errors.Is(a.SetSize(5), errs.ErrCapacity))
	require.NoError(t, a.SetSize(2))
	assert.Equal(t, []int32{0, 1}, a.Data())
	checkInvariants(t, a)
}

func TestCopyAndMove(t *testing.T) {
	src := New[buffer, traits.CM]()
	require.NoError(t, PushBack(src, buffer{data: []int{1, 2}}))

	cp := Clone(src)
	cp.Index(0).data[0] = 99
	assert.Equal(t, 1, src.Index(0).data[0])
	assert.Equal(t, src.Cap(), cp.Cap())

	other := FromSlice[buffer, traits.CM]([]buffer{{}, {}, {}})
	Assign(other, src)
	assert.Equal(t, 1, other.Size())
	other.Index(0).data[1] = 42
	assert.Equal(t, 2, src.Index(0).data[1])

	moved := Take(src)
	assert.Equal(t, 0, src.Size())
	assert.Equal(t, 0, src.Cap())
	assert.Equal(t, []int{1, 2}, moved.Index(0).data)

	MoveTo(other, moved)
	assert.Equal(t, 0, moved.Size())
	assert.Equal(t, 0, moved.Cap())
	assert.Equal(t, []int{1, 2}, other.Index(0).data)
}

func TestExtend(t *testing.T) {
	a := FromSlice[int, traits.CM]([]int{1, 2})
	b := FromSlice[int, traits.CM]([]int{3})
	require.NoError(t, Extend(a, b))
	require.NoError(t, Extend(a, a))
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, contents(a))

	require.NoError(t, ExtendMove(b, a))
	assert.Equal(t, []int{3, 1, 2, 3, 1, 2, 3}, contents(b))
	assert.True(t, a.Empty())
	checkInvariants(t, a)
	checkInvariants(t, b)
}

func TestSwap(t *testing.T) {
	a := FromSlice[int, traits.C]([]int{1})
	b := New[int, traits.C](WithGrowth(GrowDoubling))
	a.Swap(b)
	assert.True(t, a.Empty())
	assert.Equal(t, GrowDoubling, a.Growth())
	assert.Equal(t, []int{1}, contents(b))
}

func TestMoveOnlyKind(t *testing.T) {
	a := New[boxed, traits.M]()
	for i := 0; i < 3; i++ {
		v := boxed{i}
		require.NoError(t, PushFrontMove(a, &v))
	}
	v := boxed{9}
	require.NoError(t, InsertMove(a, 1, &v))
	assert.Equal(t, []boxed{{2}, {9}, {1}, {0}}, contents(a))
	assert.Equal(t, traits.Flags{Move: true}, a.Flags())
}

// TestRelocationPathsAgree drives an int array (bulk relocation) and a boxed
// array (element-wise relocation) through the same random operations and
// checks both against a plain slice.
func TestRelocationPathsAgree(t *testing.T) {
	n := getEnvInt("CONTAINERS_TEST_SIZE", 2000)
	rng := rand.New(rand.NewSource(1))
	fast := New[int, traits.DCM]()
	slow := New[boxed, traits.DCM](WithGrowth(GrowDoubling))
	var model []int

	for i := 0; i < n; i++ {
		switch op := rng.Intn(6); {
		case op == 0:
			require.NoError(t, PushBack(fast, i))
			require.NoError(t, PushBack(slow, boxed{i}))
			model = append(model, i)
		case op == 1:
			require.NoError(t, PushFront(fast, i))
			require.NoError(t, PushFront(slow, boxed{i}))
			model = slices.Insert(model, 0, i)
		case op == 2:
			at := rng.Intn(len(model) + 1)
			require.NoError(t, Insert(fast, at, i))
			require.NoError(t, Insert(slow, at, boxed{i}))
			model = slices.Insert(model, at, i)
		case op == 3 && len(model) > 0:
			at := rng.Intn(len(model))
			Erase(fast, at)
			Erase(slow, at)
			model = slices.Delete(model, at, at+1)
		case op == 4 && len(model) > 0:
			fast.PopBack()
			slow.PopBack()
			model = model[:len(model)-1]
		case op == 5 && len(model) > 1:
			lo := rng.Intn(len(model) - 1)
			hi := lo + rng.Intn(len(model)-lo)
			EraseRange(fast, lo, hi)
			EraseRange(slow, lo, hi)
			model = slices.Delete(model, lo, hi+1)
		}
		checkInvariants(t, fast)
		checkInvariants(t, slow)
	}

	require.Equal(t, len(model), fast.Size())
	require.Equal(t, len(model), slow.Size())
	for i, v := range model {
		require.Equal(t, v, *fast.Index(i))
		require.Equal(t, v, slow.Index(i).v)
	}
}
