// Package async runs a single computation in its own goroutine and lets the
// caller wait for it with an optional deadline.
//
// The schema engine uses it to await user supplied checks one at a time: each
// check is started with Async and awaited with AwaitContext before the next
// one starts, so ordering stays deterministic while a hanging check can still
// be abandoned after a timeout.
//
// # Usage
//
//	future := async.Async(ctx, "alice", func(ctx context.Context, name string) (bool, error) {
//	    return lookupUser(ctx, name)
//	})
//
//	ok, err := future.AwaitContext(ctx, 2*time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//	    // the computation did not finish in time
//	}
//
// # Error Handling
//
// Await returns the error produced by the callback. AwaitContext and
// AwaitWithTimeout additionally return ErrTimeout or the context error when
// they stop waiting early. A panic in the callback is converted to ErrPanic.
package async
