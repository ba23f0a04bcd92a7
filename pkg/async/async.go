package async

import (
	"context"
	"fmt"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits at most timeout for the computation.
// A non-positive timeout waits indefinitely.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	return f.AwaitContext(context.Background(), timeout)
}

// AwaitContext waits until the computation completes, ctx is done or the
// timeout elapses, whichever comes first. A non-positive timeout only bounds
// the wait by ctx. The computation keeps running in the background after an
// early return; it observes cancellation only through the context it was
// started with.
func (f *Future[U]) AwaitContext(ctx context.Context, timeout time.Duration) (U, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	var zero U
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-expired:
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in its own goroutine and returns a Future for its
// result. A context that is already done completes the future with ctx.Err()
// without calling fn. A panic inside fn completes the future with ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result = zero
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}
