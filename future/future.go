// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package future provides a single-assignment container for a value
// produced asynchronously, together with the Promise that fills it.
package future

import (
	"context"
	"sync"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that
// value could not be made available.
//
// Example usage:
//
//	f := future.New(func() (int, error) {
//	    return compute(), nil
//	})
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	result, err := f.Await(ctx)
type Future[T any] interface {
	// Await blocks until the Future is completed or context is canceled and
	// returns either a result or an error.
	Await(context.Context) (T, error)

	// complete completes the Future with either a value or an error.
	// It is used by [Promise] internally.
	complete(T, error)
}

// New creates a Future that executes the given task in its own goroutine.
// The Future is completed with the value returned by the task or failed with its error.
func New[T any](task func() (T, error)) Future[T] {
	promise := NewPromise[T]()
	go func() {
		result, err := task()
		if err != nil {
			promise.Failure(err)
			return
		}
		promise.Success(result)
	}()
	return promise.Future()
}

type future[T any] struct {
	completeOnce sync.Once
	// closed once value and err are set
	done  chan struct{}
	value T
	err   error
}

var _ Future[any] = (*future[any])(nil)

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// Await blocks until the Future is completed or context is canceled and
// returns either a result or an error. Only completion is final: a caller
// whose context expired may await again and still get the result.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	default:
	}

	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (x *future[T]) complete(value T, err error) {
	x.completeOnce.Do(func() {
		x.value, x.err = value, err
		close(x.done)
	})
}

// Promise is a writable, single-assignment container which completes a Future.
// Only the first call to Success or Failure has an effect.
type Promise[T any] struct {
	once   sync.Once
	future *future[T]
}

// NewPromise returns a Promise with a pending Future.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{future: newFuture[T]()}
}

// Success completes the underlying Future with a given value.
// It reports whether this call completed the Future.
func (p *Promise[T]) Success(value T) bool {
	completed := false
	p.once.Do(func() {
		p.future.complete(value, nil)
		completed = true
	})
	return completed
}

// Failure fails the underlying Future with a given error.
// It reports whether this call completed the Future.
func (p *Promise[T]) Failure(err error) bool {
	completed := false
	p.once.Do(func() {
		var zero T
		p.future.complete(zero, err)
		completed = true
	})
	return completed
}

// Future returns the underlying Future.
func (p *Promise[T]) Future() Future[T] {
	return p.future
}
