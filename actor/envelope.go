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

package actor

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/messages/errors"
	"github.com/tochemey/messages/future"
)

// envelope carries one message of any type through a mailbox of actor A.
// deliver is called at most once, by the run loop. discard is called
// instead when the mailbox closes before the envelope is delivered.
type envelope[A Actor] interface {
	deliver(ctx context.Context, actor A, c *Context[A])
	discard()
}

type requestEnvelope[A Actor, R any] struct {
	message  Request[A, R]
	promise  *future.Promise[R]
	consumed atomic.Bool
}

func newRequestEnvelope[A Actor, R any](message Request[A, R]) *requestEnvelope[A, R] {
	return &requestEnvelope[A, R]{
		message: message,
		promise: future.NewPromise[R](),
	}
}

func (e *requestEnvelope[A, R]) deliver(ctx context.Context, actor A, c *Context[A]) {
	c.consume(&e.consumed, e.message)

	answered := false
	defer func() {
		// a panicking handler fails its caller before the panic goes on
		if !answered {
			e.promise.Failure(gerrors.ErrReceiverDisconnected)
		}
	}()

	// the caller may have given up waiting, which is fine
	e.promise.Success(e.message.Handle(ctx, actor, c))
	answered = true
}

func (e *requestEnvelope[A, R]) discard() {
	e.promise.Failure(gerrors.ErrReceiverDisconnected)
}

type notificationEnvelope[A Actor] struct {
	message  Notification[A]
	consumed atomic.Bool
}

func (e *notificationEnvelope[A]) deliver(ctx context.Context, actor A, c *Context[A]) {
	c.consume(&e.consumed, e.message)
	e.message.Notify(ctx, actor, c)
}

func (e *notificationEnvelope[A]) discard() {}

// coroutineEnvelope does not handle the message on the loop: it clones the
// actor and schedules the computation on the context's Scheduler.
type coroutineEnvelope[A Duplicable[A], R any] struct {
	message  Coroutine[A, R]
	promise  *future.Promise[R]
	consumed atomic.Bool
}

func newCoroutineEnvelope[A Duplicable[A], R any](message Coroutine[A, R]) *coroutineEnvelope[A, R] {
	return &coroutineEnvelope[A, R]{
		message: message,
		promise: future.NewPromise[R](),
	}
}

func (e *coroutineEnvelope[A, R]) deliver(ctx context.Context, actor A, c *Context[A]) {
	c.consume(&e.consumed, e.message)

	handedOff := false
	defer func() {
		if !handedOff {
			e.promise.Failure(gerrors.ErrReceiverDisconnected)
		}
	}()

	clone := actor.Clone()
	if err := c.scheduler.Schedule(func() { e.calculate(ctx, clone, c) }); err != nil {
		c.logger.Errorf("failed to schedule coroutine %T: %v", e.message, err)
		e.promise.Failure(fmt.Errorf("%w: %w", gerrors.ErrReceiverDisconnected, err))
	}
	handedOff = true
}

func (e *coroutineEnvelope[A, R]) calculate(ctx context.Context, clone A, c *Context[A]) {
	if c.coroutines != nil {
		if err := c.coroutines.Acquire(ctx, 1); err != nil {
			e.promise.Failure(fmt.Errorf("%w: %w", gerrors.ErrReceiverDisconnected, err))
			return
		}
		defer c.coroutines.Release(1)
	}

	c.metric.CoroutineCount().Add(ctx, 1, c.attributes)
	defer c.metric.CoroutineCount().Add(ctx, -1, c.attributes)

	defer func() {
		if r := recover(); r != nil {
			perr := toPanicError(r)
			c.logger.Errorf("coroutine %T failed: %v", e.message, perr)
			e.promise.Failure(fmt.Errorf("%w: %w", gerrors.ErrReceiverDisconnected, perr))
		}
	}()

	e.promise.Success(e.message.Calculate(ctx, clone))
}

func (e *coroutineEnvelope[A, R]) discard() {
	e.promise.Failure(gerrors.ErrReceiverDisconnected)
}

// toPanicError enriches a recovered value with the location of the panic
func toPanicError(r any) *gerrors.PanicError {
	pc, fn, line, _ := runtime.Caller(3)
	if err, ok := r.(error); ok {
		return gerrors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line))
	}
	return gerrors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
}
