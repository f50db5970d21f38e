package testbench

import (
	"runtime"
	"slices"
	"time"

	"github.com/makma3d/containers/internal/contract"
	"github.com/makma3d/containers/pkg/array"
	"github.com/makma3d/containers/pkg/fixed"
	"github.com/makma3d/containers/pkg/list"
	"github.com/makma3d/containers/pkg/queue"
	"github.com/makma3d/containers/pkg/traits"
)

// FixedCap is the capacity of the fixed arrays used by the workloads.
// Runs with more elements wrap around and start over.
const FixedCap = 4096

// Workload is one timed operation pattern on one container variant.
type Workload struct {
	Name           string
	Implementation string
	// Run performs the workload on n elements and returns how many container
	// operations it executed.
	Run func(n int) int64
}

// Result is the measurement of one Workload run.
type Result struct {
	Workload       string
	Implementation string
	Operations     int64
	Elements       int
	Elapsed        time.Duration
	NsPerOp        float64
}

// RunWorkload times a single run of w over n elements.
func RunWorkload(w Workload, n int) Result {
	runtime.GC()
	start := time.Now()
	ops := w.Run(n)
	elapsed := time.Since(start)
	return Result{
		Workload:       w.Name,
		Implementation: w.Implementation,
		Operations:     ops,
		Elements:       n,
		Elapsed:        elapsed,
		NsPerOp:        NsPerOp(elapsed.Nanoseconds(), ops),
	}
}

// relocating moves through a Mover hook, which keeps arrays of it off the
// bulk relocation path.
type relocating struct{ v int }

func (r *relocating) MoveFrom(src *relocating) { r.v = src.v }

type fixedInts = fixed.Array[int, traits.DCM, [FixedCap]int]

// drain pops a sequence empty from the back.
func drain[S contract.Bidirectional[T], T any](s S) int64 {
	var ops int64
	for !s.Empty() {
		s.PopBack()
		ops++
	}
	return ops
}

// touch reads every element once.
func touch[S contract.Sequence[T], T any](s S) int64 {
	var n int64
	for range s.All() {
		n++
	}
	return n
}

func arrayPushBack(g array.Growth) func(int) int64 {
	return func(n int) int64 {
		a := array.New[int, traits.DCM](array.WithGrowth(g))
		for i := 0; i < n; i++ {
			_ = array.PushBack(a, i)
		}
		return int64(n) + drain[*array.Array[int, traits.DCM], int](a)
	}
}

func arrayPushFront(g array.Growth) func(int) int64 {
	return func(n int) int64 {
		a := array.New[int, traits.DCM](array.WithGrowth(g))
		for i := 0; i < n; i++ {
			_ = array.PushFront(a, i)
		}
		return int64(n) + touch[*array.Array[int, traits.DCM], int](a)
	}
}

func arrayGrow[T any](wrap func(int) T) func(int) int64 {
	return func(n int) int64 {
		a := array.New[T, traits.CM]()
		for i := 0; i < n; i++ {
			_ = array.PushBack(a, wrap(i))
		}
		return int64(n)
	}
}

func arrayInsertMiddle(g array.Growth) func(int) int64 {
	return func(n int) int64 {
		a := array.New[int, traits.DCM](array.WithGrowth(g))
		for i := 0; i < n; i++ {
			_ = array.Insert(a, a.Size()/2, i)
		}
		return int64(n)
	}
}

func arrayFIFO(g array.Growth) func(int) int64 {
	return func(n int) int64 {
		a := array.New[int, traits.DCM](array.WithGrowth(g))
		for i := 0; i < n; i++ {
			_ = array.PushBack(a, i)
		}
		for !a.Empty() {
			array.PopFront(a)
		}
		return 2 * int64(n)
	}
}

func fixedPushBack(n int) int64 {
	var a fixedInts
	var ops int64
	for i := 0; i < n; i++ {
		if a.Full() {
			ops += drain[*fixedInts, int](&a)
		}
		_ = fixed.PushBack(&a, i)
		ops++
	}
	return ops
}

func fixedPushFront(n int) int64 {
	var a fixedInts
	var ops int64
	for i := 0; i < n; i++ {
		if a.Full() {
			a.Clear()
		}
		_ = fixed.PushFront(&a, i)
		ops++
	}
	return ops
}

func listPushBack(n int) int64 {
	l := list.New[int, traits.DCM]()
	for i := 0; i < n; i++ {
		list.PushBack(l, i)
	}
	return int64(n) + drain[*list.List[int, traits.DCM], int](l)
}

func listPushFront(n int) int64 {
	l := list.New[int, traits.DCM]()
	for i := 0; i < n; i++ {
		list.PushFront(l, i)
	}
	return int64(n) + touch[*list.List[int, traits.DCM], int](l)
}

func listInsertMiddle(n int) int64 {
	l := list.New[int, traits.DCM]()
	for i := 0; i < n; i++ {
		_ = list.Insert(l, l.Size()/2, i)
	}
	return int64(n)
}

func listFIFO(n int) int64 {
	l := list.New[int, traits.DCM]()
	for i := 0; i < n; i++ {
		list.PushBack(l, i)
	}
	for !l.Empty() {
		l.PopFront()
	}
	return 2 * int64(n)
}

func listEraseEveryOther(n int) int64 {
	l := list.New[int, traits.DCM]()
	for i := 0; i < n; i++ {
		list.PushBack(l, i)
	}
	ops := int64(n)
	for it := l.Begin(); !it.End(); {
		next := it
		next.Next()
		if *it.Value()%2 == 0 {
			_ = l.Erase(it)
			ops++
		}
		it = next
	}
	return ops
}

func queueFIFO(n int) int64 {
	q := queue.New[int, traits.DCM](min(n, FixedCap))
	var ops int64
	for i := 0; i < n; i++ {
		if q.Full() {
			for !q.Empty() {
				_, _ = queue.Pop(q)
				ops++
			}
		}
		_ = queue.Push(q, i)
		ops++
	}
	return ops + touch[*queue.Queue[int, traits.DCM], int](q)
}

func sliceFIFO(n int) int64 {
	var s []int
	for i := 0; i < n; i++ {
		s = append(s, i)
	}
	for len(s) > 0 {
		s = s[1:]
	}
	return 2 * int64(n)
}

func sliceInsertMiddle(n int) int64 {
	var s []int
	for i := 0; i < n; i++ {
		s = slices.Insert(s, len(s)/2, i)
	}
	return int64(n)
}

// Workloads returns every known workload, grouped by name. The array
// variants of insert-middle and fifo grow with g.
func Workloads(g array.Growth) []Workload {
	grown := "array/" + g.String()
	return []Workload{
		{Name: "push-back", Implementation: "array/exact", Run: arrayPushBack(array.GrowExact)},
		{Name: "push-back", Implementation: "array/doubling", Run: arrayPushBack(array.GrowDoubling)},
		{Name: "push-back", Implementation: "fixed", Run: fixedPushBack},
		{Name: "push-back", Implementation: "list", Run: listPushBack},
		{Name: "push-front", Implementation: "array/exact", Run: arrayPushFront(array.GrowExact)},
		{Name: "push-front", Implementation: "array/doubling", Run: arrayPushFront(array.GrowDoubling)},
		{Name: "push-front", Implementation: "fixed", Run: fixedPushFront},
		{Name: "push-front", Implementation: "list", Run: listPushFront},
		{Name: "insert-middle", Implementation: grown, Run: arrayInsertMiddle(g)},
		{Name: "insert-middle", Implementation: "list", Run: listInsertMiddle},
		{Name: "insert-middle", Implementation: "slice", Run: sliceInsertMiddle},
		{Name: "fifo", Implementation: grown, Run: arrayFIFO(g)},
		{Name: "fifo", Implementation: "list", Run: listFIFO},
		{Name: "fifo", Implementation: "queue", Run: queueFIFO},
		{Name: "fifo", Implementation: "slice", Run: sliceFIFO},
		{Name: "erase-iter", Implementation: "list", Run: listEraseEveryOther},
		{Name: "relocate", Implementation: "array/bulk", Run: arrayGrow(func(i int) int { return i })},
		{Name: "relocate", Implementation: "array/elementwise", Run: arrayGrow(func(i int) relocating { return relocating{i} })},
	}
}

// FilterWorkloads keeps the workloads whose name is in names. An empty
// names keeps everything.
func FilterWorkloads(all []Workload, names []string) []Workload {
	if len(names) == 0 {
		return all
	}
	var out []Workload
	for _, w := range all {
		if slices.Contains(names, w.Name) {
			out = append(out, w)
		}
	}
	return out
}
