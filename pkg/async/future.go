package async

import (
	"context"
	"fmt"
	"sync"
)

// Future holds the eventual result of a background function.
type Future[T any] struct {
	done   chan struct{}
	result T
	err    error

	mu        sync.Mutex
	callbacks []func(T, error)
}

// Run starts fn in a new goroutine. If ctx is already cancelled fn is not
// called and the future completes with ctx.Err().
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		var (
			res T
			err error
		)
		if err = ctx.Err(); err == nil {
			res, err = call(ctx, fn)
		}
		f.complete(res, err)
	}()
	return f
}

func call[T any](ctx context.Context, fn func(context.Context) (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}

func (f *Future[T]) complete(res T, err error) {
	f.mu.Lock()
	f.result, f.err = res, err
	close(f.done)
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(res, err)
	}
}

// Await blocks until the future completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the result is available without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// OnComplete registers cb to receive the result. Callbacks registered after
// completion run immediately on the caller's goroutine; earlier ones run on
// the worker goroutine in registration order.
func (f *Future[T]) OnComplete(cb func(T, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		cb(f.result, f.err)
		return
	default:
	}
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
}
