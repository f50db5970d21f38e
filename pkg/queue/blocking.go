package queue

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/semaphore"

	"github.com/makma3d/containers/pkg/errs"
	"github.com/makma3d/containers/pkg/traits"
)

// Blocking is a Queue that is safe for concurrent use. The *Wait functions
// park the caller until there is a free slot or a queued element, or until
// the context is done. Waiters acquire their semaphore in arrival order, but
// once woken they race for the mutex, so the elements two concurrent
// poppers receive are not ordered by when they started waiting. Elements
// themselves always leave in the order they were queued.
//
// Two weighted semaphores count free slots and queued elements; the mutex
// only guards the ring itself.
type Blocking[T any, K traits.Kind] struct {
	mu    sync.Mutex
	q     *Queue[T, K]
	slots *semaphore.Weighted
	items *semaphore.Weighted
}

// NewBlocking creates a blocking queue with room for capacity elements.
// A capacity below 1 is raised to 1; a zero-capacity handoff would never
// complete.
func NewBlocking[T any, K traits.Kind](capacity int) *Blocking[T, K] {
	if capacity < 1 {
		capacity = 1
	}
	b := &Blocking[T, K]{
		q:     New[T, K](capacity),
		slots: semaphore.NewWeighted(int64(capacity)),
		items: semaphore.NewWeighted(int64(capacity)),
	}
	// No items yet: hold every unit of the item semaphore.
	b.items.TryAcquire(int64(capacity))
	return b
}

// Size returns the number of queued elements.
func (b *Blocking[T, K]) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Size()
}

// Cap returns the number of slots.
func (b *Blocking[T, K]) Cap() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Cap()
}

// push runs put on a reserved slot and publishes the element.
func (b *Blocking[T, K]) push(put func(*Queue[T, K]) error) error {
	b.mu.Lock()
	err := put(b.q)
	b.mu.Unlock()
	if err != nil {
		b.slots.Release(1)
		return err
	}
	b.items.Release(1)
	return nil
}

// pop runs take on a reserved element and frees its slot.
func (b *Blocking[T, K]) pop(take func(*Queue[T, K]) (T, error)) (T, error) {
	b.mu.Lock()
	v, err := take(b.q)
	b.mu.Unlock()
	if err != nil {
		b.items.Release(1)
		return v, err
	}
	b.slots.Release(1)
	return v, nil
}

func (b *Blocking[T, K]) waitSlot(ctx context.Context, op string) error {
	if err := b.slots.Acquire(ctx, 1); err != nil {
		return errors.Wrapf(err, "%s", op)
	}
	return nil
}

func (b *Blocking[T, K]) waitItem(ctx context.Context, op string) error {
	if err := b.items.Acquire(ctx, 1); err != nil {
		return errors.Wrapf(err, "%s", op)
	}
	return nil
}

func (b *Blocking[T, K]) trySlot(op string) error {
	if !b.slots.TryAcquire(1) {
		return errs.Capacity(op, b.q.Cap()+1, b.q.Cap())
	}
	return nil
}

func (b *Blocking[T, K]) tryItem(op string) error {
	if !b.items.TryAcquire(1) {
		return errs.Empty(op)
	}
	return nil
}

// PushWait queues a copy of v, waiting for a free slot.
func PushWait[T any, K traits.Copy](ctx context.Context, b *Blocking[T, K], v T) error {
	if err := b.waitSlot(ctx, "push wait"); err != nil {
		return err
	}
	return b.push(func(q *Queue[T, K]) error { return Push(q, v) })
}

// PushWaitMove moves *v into the queue, waiting for a free slot. *v is
// left untouched if the wait is cancelled.
func PushWaitMove[T any, K traits.Move](ctx context.Context, b *Blocking[T, K], v *T) error {
	if err := b.waitSlot(ctx, "push wait"); err != nil {
		return err
	}
	return b.push(func(q *Queue[T, K]) error { return PushMove(q, v) })
}

// PushWaitDefault queues a default-constructed element, waiting for a free
// slot.
func PushWaitDefault[T any, K traits.Default](ctx context.Context, b *Blocking[T, K]) error {
	if err := b.waitSlot(ctx, "push wait"); err != nil {
		return err
	}
	return b.push(PushDefault[T, K])
}

// PopWait moves the oldest element out, waiting until there is one.
func PopWait[T any, K traits.Move](ctx context.Context, b *Blocking[T, K]) (T, error) {
	if err := b.waitItem(ctx, "pop wait"); err != nil {
		var zero T
		return zero, err
	}
	return b.pop(Pop[T, K])
}

// PopCopyWait copies the oldest element out, waiting until there is one.
func PopCopyWait[T any, K traits.Copy](ctx context.Context, b *Blocking[T, K]) (T, error) {
	if err := b.waitItem(ctx, "pop copy wait"); err != nil {
		var zero T
		return zero, err
	}
	return b.pop(PopCopy[T, K])
}

// TryPush queues a copy of v or fails with errs.ErrCapacity.
func TryPush[T any, K traits.Copy](b *Blocking[T, K], v T) error {
	if err := b.trySlot("try push"); err != nil {
		return err
	}
	return b.push(func(q *Queue[T, K]) error { return Push(q, v) })
}

// TryPushMove moves *v into the queue or fails with errs.ErrCapacity.
func TryPushMove[T any, K traits.Move](b *Blocking[T, K], v *T) error {
	if err := b.trySlot("try push"); err != nil {
		return err
	}
	return b.push(func(q *Queue[T, K]) error { return PushMove(q, v) })
}

// TryPushDefault queues a default-constructed element or fails with
// errs.ErrCapacity.
func TryPushDefault[T any, K traits.Default](b *Blocking[T, K]) error {
	if err := b.trySlot("try push"); err != nil {
		return err
	}
	return b.push(PushDefault[T, K])
}

// TryPop moves the oldest element out or fails with errs.ErrEmpty.
func TryPop[T any, K traits.Move](b *Blocking[T, K]) (T, error) {
	if err := b.tryItem("try pop"); err != nil {
		var zero T
		return zero, err
	}
	return b.pop(Pop[T, K])
}

// TryPopCopy copies the oldest element out or fails with errs.ErrEmpty.
func TryPopCopy[T any, K traits.Copy](b *Blocking[T, K]) (T, error) {
	if err := b.tryItem("try pop"); err != nil {
		var zero T
		return zero, err
	}
	return b.pop(PopCopy[T, K])
}
