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

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/messages/errors"
)

// Address is the send side of an actor's mailbox.
//
// Addresses are reference counted: every handle obtained from Spawn,
// Context.Address or Clone must eventually be released. Releasing the last
// one asks the actor to stop, the same way Stop does. A released handle
// can no longer send, but it can still report Connected and wait for the
// actor to stop.
type Address[A Actor] struct {
	mailbox  *mailbox[A]
	counted  bool
	released atomic.Bool
}

func newAddress[A Actor](m *mailbox[A]) *Address[A] {
	m.handles.Inc()
	return &Address[A]{mailbox: m, counted: true}
}

// ID returns the identifier shared by the actor's Context and all its addresses.
func (x *Address[A]) ID() string {
	return x.mailbox.id
}

// Clone returns a new handle to the same mailbox.
// Cloning a released handle returns a released handle.
func (x *Address[A]) Clone() *Address[A] {
	if x.released.Load() {
		clone := &Address[A]{mailbox: x.mailbox}
		clone.released.Store(true)
		return clone
	}
	return newAddress(x.mailbox)
}

// Release gives the handle up. It is safe to call more than once.
func (x *Address[A]) Release() {
	if x.released.Swap(true) || !x.counted {
		return
	}
	if x.mailbox.handles.Dec() == 0 {
		x.mailbox.signal(releasedSignal)
	}
}

// Connected reports whether the mailbox still accepts messages through this handle.
// The answer is a point-in-time snapshot.
func (x *Address[A]) Connected() bool {
	return !x.released.Load() && !x.mailbox.isClosed()
}

// Notify enqueues msg without waiting for it to be handled. It waits for
// room when the mailbox is full and fails with ErrReceiverDisconnected when
// the mailbox is closed.
func (x *Address[A]) Notify(ctx context.Context, msg Notification[A]) error {
	return x.enqueue(ctx, &notificationEnvelope[A]{message: msg})
}

// Stop asks the actor to stop. The request does not go through the mailbox,
// so a full mailbox cannot delay it. Messages already queued when the request
// is observed are handled before Stopping runs. Stop is a no-op once the
// actor is stopped.
func (x *Address[A]) Stop() {
	if x.released.Load() {
		return
	}
	x.mailbox.signal(stopSignal)
}

// WaitForStop blocks until the run loop has exited and Stopped has returned,
// or until ctx is done. It returns immediately when the actor is already gone.
func (x *Address[A]) WaitForStop(ctx context.Context) error {
	select {
	case <-x.mailbox.terminated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of envelopes waiting in the mailbox
func (x *Address[A]) Len() int {
	return len(x.mailbox.envelopes)
}

// Cap returns the mailbox capacity
func (x *Address[A]) Cap() int {
	return cap(x.mailbox.envelopes)
}

func (x *Address[A]) enqueue(ctx context.Context, env envelope[A]) error {
	if x.released.Load() {
		return gerrors.ErrReceiverDisconnected
	}
	return x.mailbox.enqueue(ctx, env)
}

// Send enqueues a request and waits for the actor's answer. It fails with
// ErrReceiverDisconnected when the mailbox is closed before the request is
// accepted or the actor stops before answering. The caller giving up through
// ctx does not prevent the request from being handled.
//
//	sum, err := actor.Send[int](ctx, addr, Add(10))
func Send[R any, A Actor](ctx context.Context, addr *Address[A], msg Request[A, R]) (R, error) {
	env := newRequestEnvelope(msg)
	if err := addr.enqueue(ctx, env); err != nil {
		var zero R
		return zero, err
	}
	return env.promise.Future().Await(ctx)
}

// Calculate enqueues a coroutine and waits for its result. When the loop
// reaches it, the actor is cloned and the computation is scheduled
// independently, so it runs concurrently with the loop and other coroutines.
// A panicking coroutine fails only its own caller.
func Calculate[R any, A Duplicable[A]](ctx context.Context, addr *Address[A], msg Coroutine[A, R]) (R, error) {
	env := newCoroutineEnvelope(msg)
	if err := addr.enqueue(ctx, env); err != nil {
		var zero R
		return zero, err
	}
	return env.promise.Future().Await(ctx)
}
