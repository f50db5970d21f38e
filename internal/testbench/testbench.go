// Package testbench times container workloads and runs producer/consumer
// handoff through a blocking queue.
package testbench

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/makma3d/containers/internal/contract"
	"github.com/makma3d/containers/pkg/queue"
	"github.com/makma3d/containers/pkg/traits"
)

// Config is only about concurrency: how many producers, how many consumers.
type Config struct {
	NumProducers int `toml:"producers" json:"producers"`
	NumConsumers int `toml:"consumers" json:"consumers"`
}

// blockingHandoff adapts a queue.Blocking to contract.Handoff.
type blockingHandoff[T any, K traits.CopyMove] struct {
	*queue.Blocking[T, K]
}

// NewHandoff returns a blocking queue of the given capacity as a Handoff.
func NewHandoff[T any, K traits.CopyMove](capacity int) contract.Handoff[T] {
	return blockingHandoff[T, K]{queue.NewBlocking[T, K](capacity)}
}

func (h blockingHandoff[T, K]) Empty() bool { return h.Size() == 0 }

func (h blockingHandoff[T, K]) Put(ctx context.Context, v T) error {
	return queue.PushWaitMove(ctx, h.Blocking, &v)
}

func (h blockingHandoff[T, K]) Take(ctx context.Context) (T, error) {
	return queue.PopWait(ctx, h.Blocking)
}

func (h blockingHandoff[T, K]) TryTake() (T, bool) {
	v, err := queue.TryPop(h.Blocking)
	return v, err == nil
}

// RunTimedTest spawns producers and consumers that run for the specified
// duration, measuring how many messages are actually queued and taken in
// that window. Once the duration expires, producers stop and consumers
// drain whatever is left in the queue.
// Returns the total messages produced, total consumed, and the elapsed time.
func RunTimedTest[T any, Q contract.Handoff[T]](
	q Q,
	cfg Config,
	testDuration time.Duration,
	valueGenerator func(int) T,
) (producedCount int64, consumedCount int64, elapsed time.Duration, err error) {
	if cfg.NumProducers < 1 || cfg.NumConsumers < 1 {
		return 0, 0, 0, errors.Newf("need at least one producer and one consumer, got %d/%d",
			cfg.NumProducers, cfg.NumConsumers)
	}

	// Producers stop when the window closes.
	window, cancel := context.WithTimeout(context.Background(), testDuration)
	defer cancel()

	var totalProduced, totalConsumed, msgIndex atomic.Int64
	start := time.Now()

	var producers errgroup.Group
	for i := 0; i < cfg.NumProducers; i++ {
		producers.Go(func() error {
			for window.Err() == nil {
				idx := msgIndex.Add(1) - 1
				if err := q.Put(window, valueGenerator(int(idx))); err != nil {
					if window.Err() != nil {
						return nil
					}
					return err
				}
				totalProduced.Add(1)
			}
			return nil
		})
	}

	// Consumers block until the producers are done, then drain.
	produced := make(chan struct{})
	var consumers errgroup.Group
	for i := 0; i < cfg.NumConsumers; i++ {
		consumers.Go(func() error {
			for window.Err() == nil {
				if _, err := q.Take(window); err != nil {
					if window.Err() != nil {
						break
					}
					return err
				}
				totalConsumed.Add(1)
			}
			<-produced
			for {
				if _, ok := q.TryTake(); !ok {
					return nil
				}
				totalConsumed.Add(1)
			}
		})
	}

	err = producers.Wait()
	close(produced)
	if cerr := consumers.Wait(); err == nil {
		err = cerr
	}

	elapsed = time.Since(start)
	return totalProduced.Load(), totalConsumed.Load(), elapsed, errors.Wrap(err, "timed test")
}
