package opfskit

import (
	"context"

	"github.com/river0g/opfs-kit/errors"
)

// Deferred is a not-yet-complete asynchronous outcome. Operations return a
// Deferred when no completion callback was supplied; the caller waits on it
// with Await or Wait, optionally bounding latency through the context (the
// operation layer itself has no timeouts).
//
// A Deferred completes exactly once and may be awaited any number of times
// afterwards.
type Deferred[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

func (d *Deferred[T]) complete(v T, err error) {
	d.val = v
	d.err = err
	close(d.done)
}

// Await blocks until the operation completes or ctx is done, returning the
// operation's value and error. A ctx expiry abandons the wait, not the
// operation: the backend call keeps running to completion.
//
// Awaiting a nil Deferred (the return of a callback-convention call) is an
// INVALID_INPUT error.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if d == nil {
		return zero, errors.New(errors.CodeInvalidInput,
			"no deferred result: the operation was invoked with a completion callback")
	}
	select {
	case <-d.done:
		return d.val, d.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Wait is Await for callers that only need the error.
func (d *Deferred[T]) Wait(ctx context.Context) error {
	_, err := d.Await(ctx)
	return err
}

// dispatch runs op as a single asynchronous task and routes its outcome.
// With a callback the call returns a nil Deferred immediately; success
// invokes cb(nil, value), failure cb(err, zero). Without a callback the
// outcome flows through the returned Deferred. One goroutine per call,
// regardless of convention.
func dispatch[T any](op func() (T, error), cb func(error, T)) *Deferred[T] {
	if cb != nil {
		go func() {
			v, err := op()
			if err != nil {
				var zero T
				cb(err, zero)
				return
			}
			cb(nil, v)
		}()
		return nil
	}

	d := newDeferred[T]()
	go func() {
		v, err := op()
		d.complete(v, err)
	}()
	return d
}

// dispatchVoid is dispatch for operations without a result value.
func dispatchVoid(op func() error, cb func(error)) *Deferred[struct{}] {
	if cb != nil {
		go func() {
			cb(op())
		}()
		return nil
	}

	d := newDeferred[struct{}]()
	go func() {
		d.complete(struct{}{}, op())
	}()
	return d
}
