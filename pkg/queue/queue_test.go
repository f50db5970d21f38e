package queue

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

func contents[T any, K traits.Kind](q *Queue[T, K]) []T {
	var out []T
	for _, v := range q.All() {
		out = append(out, v)
	}
	return out
}

// tracked counts copies and destructions.
type tracked struct {
	v      int
	copies *int
	freed  *int
}

func (t tracked) Clone() tracked {
	*t.copies++
	return t
}

func (t *tracked) Destroy() {
	if t.freed != nil {
		*t.freed++
	}
}

func TestEndToEnd(t *testing.T) {
	q := New[int, traits.CM](3)
	require.NoError(t, Push(q, 1))
	require.NoError(t, Push(q, 2))
	require.NoError(t, Push(q, 3))
	assert.True(t, q.Full())
	assert.True(t, errors.Is(Push(q, 4), errs.ErrCapacity))

	v, err := Pop(q)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, Push(q, 4))

	for _, want := range []int{2, 3, 4} {
		v, err := Pop(q)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = Pop(q)
	assert.True(t, errors.Is(err, errs.ErrEmpty))
	assert.Equal(t, 3, q.Cap())
}

func TestWraparoundKeepsFIFO(t *testing.T) {
	const capacity = 5
	q := New[int, traits.DCM](capacity)
	next, want := 0, 0
	for ; next < capacity; next++ {
		require.NoError(t, Push(q, next))
	}
	for round := 0; round < 100; round++ {
		// pop a varying number, then refill
		n := round%capacity + 1
		for i := 0; i < n; i++ {
			v, err := Pop(q)
			require.NoError(t, err)
			require.Equal(t, want, v)
			want++
		}
		for i := 0; i < n; i++ {
			require.NoError(t, Push(q, next))
			next++
		}
		require.Equal(t, capacity, q.Size())
		assert.Equal(t, want, *q.First())
		assert.Equal(t, next-1, *q.Last())
	}
}

func TestPopCopyDestructsSlot(t *testing.T) {
	copies, freed := 0, 0
	q := New[tracked, traits.C](2)
	require.NoError(t, Push(q, tracked{v: 1, copies: &copies, freed: &freed}))
	assert.Equal(t, 1, copies)

	v, err := PopCopy(q)
	require.NoError(t, err)
	assert.Equal(t, 1, v.v)
	assert.Equal(t, 2, copies)
	assert.Equal(t, 1, freed)
	assert.True(t, q.Empty())

	_, err = PopCopy(q)
	assert.True(t, errors.Is(err, errs.ErrEmpty))
}

func TestPushVariants(t *testing.T) {
	q := New[int, traits.DM](3)
	require.NoError(t, PushDefault(q))
	v := 5
	require.NoError(t, PushMove(q, &v))
	assert.Equal(t, 0, v)
	assert.Equal(t, []int{0, 5}, contents(q))

	p, err := q.At(1)
	require.NoError(t, err)
	assert.Equal(t, 5, *p)
	_, err = q.At(2)
	assert.True(t, errors.Is(err, errs.ErrOutOfRange))
}

func TestReserveLinearises(t *testing.T) {
	q := New[int, traits.CM](3)
	for i := 1; i <= 3; i++ {
		require.NoError(t, Push(q, i))
	}
	_, err := Pop(q)
	require.NoError(t, err)
	require.NoError(t, Push(q, 4))

	Reserve(q, 2)
	assert.Equal(t, 3, q.Cap())
	Reserve(q, 6)
	assert.Equal(t, 6, q.Cap())
	assert.Equal(t, []int{2, 3, 4}, contents(q))
	require.NoError(t, Push(q, 5))
	assert.Equal(t, 5, *q.Last())

	HardReserve(q, 2)
	assert.Equal(t, []int{2, 3}, contents(q))
	assert.True(t, q.Full())

	Reserve(q, 0)
	assert.Equal(t, 0, q.Cap())
	assert.True(t, errors.Is(Push(q, 1), errs.ErrCapacity))
}

func TestClearAndReset(t *testing.T) {
	copies, freed := 0, 0
	q := New[tracked, traits.C](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, Push(q, tracked{v: i, copies: &copies, freed: &freed}))
	}
	q.Clear()
	assert.Equal(t, 3, freed)
	assert.Equal(t, 4, q.Cap())
	assert.Nil(t, q.First())
	assert.Nil(t, q.Last())

	require.NoError(t, Push(q, tracked{v: 9, copies: &copies, freed: &freed}))
	q.Reset()
	assert.Equal(t, 4, freed)
	assert.Equal(t, 0, q.Cap())
}

func TestCopyAndMove(t *testing.T) {
	src := New[int, traits.CM](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, Push(src, i))
	}
	_, err := Pop(src)
	require.NoError(t, err)

	cp := Clone(src)
	assert.Equal(t, []int{1, 2}, contents(cp))
	assert.Equal(t, 4, cp.Cap())
	require.NoError(t, Push(cp, 3))
	assert.Equal(t, 2, src.Size())

	small := New[int, traits.CM](1)
	Assign(small, cp)
	assert.Equal(t, []int{1, 2, 3}, contents(small))

	mv := Take(src)
	assert.Equal(t, 0, src.Size())
	assert.Equal(t, 0, src.Cap())
	assert.Equal(t, []int{1, 2}, contents(mv))

	MoveTo(small, mv)
	assert.Equal(t, []int{1, 2}, contents(small))
	assert.Equal(t, 0, mv.Cap())

	small.Swap(cp)
	assert.Equal(t, []int{1, 2, 3}, contents(small))
	assert.Equal(t, []int{1, 2}, contents(cp))
}
