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

// Package actor implements isolated units of state that communicate only
// through asynchronous messages.
//
// An actor is driven by a Context: the Context owns the bounded mailbox and
// runs the loop that hands each message to the actor, one at a time. Callers
// talk to the actor through an Address, which enqueues messages, carries
// responses back and lets them stop the actor or wait for it to be gone.
//
// Messages carry their own handling logic. A type implementing Request
// answers with a value, a Notification answers with nothing and a Coroutine
// runs concurrently against a clone of the actor:
//
//	type Add int
//
//	func (a Add) Handle(_ context.Context, c *Counter, _ *actor.Context[*Counter]) int {
//		c.value += int(a)
//		return c.value
//	}
//
//	addr, _ := actor.Spawn(ctx, &Counter{value: 10})
//	sum, err := actor.Send[int](ctx, addr, Add(10)) // 20
package actor

import "context"

// Action is the decision an actor returns from its Stopping hook.
type Action int

const (
	// Stop lets the run loop exit.
	Stop Action = iota
	// KeepRunning vetoes the stop request and resumes message processing.
	KeepRunning
)

// String implements fmt.Stringer
func (a Action) String() string {
	switch a {
	case Stop:
		return "Stop"
	case KeepRunning:
		return "KeepRunning"
	default:
		return "Unknown"
	}
}

// Actor defines the lifecycle hooks of a unit of state driven by a Context.
//
// The hooks and every message handler run on the loop goroutine only, so
// an actor's fields need no synchronization. Embed Base to get no-op hooks.
type Actor interface {
	// Started runs before any message is handled. A returned error is retried
	// according to WithInitMaxRetries and WithInitTimeout; when it keeps failing
	// the actor never handles a message.
	Started(ctx context.Context) error

	// Stopping runs when a stop is requested or every Address has been released.
	// Returning KeepRunning vetoes the request. The decision is ignored when
	// the run context is cancelled.
	Stopping(ctx context.Context) Action

	// Stopped runs exactly once, after the last message has been handled.
	Stopped(ctx context.Context)
}

// Base provides no-op lifecycle hooks. Its Stopping hook always agrees to stop.
type Base struct{}

var _ Actor = Base{}

// Started implements Actor.
func (Base) Started(context.Context) error { return nil }

// Stopping implements Actor.
func (Base) Stopping(context.Context) Action { return Stop }

// Stopped implements Actor.
func (Base) Stopped(context.Context) {}
