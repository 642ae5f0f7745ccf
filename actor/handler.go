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

import "context"

// Request is a message that actor A answers with a value of type R.
// Requests are handled in mailbox order, one at a time.
type Request[A Actor, R any] interface {
	Handle(ctx context.Context, actor A, c *Context[A]) R
}

// Notification is a message that actor A handles without answering.
// Notifications are handled in mailbox order, one at a time.
type Notification[A Actor] interface {
	Notify(ctx context.Context, actor A, c *Context[A])
}

// Duplicable is an actor that can hand out a copy of itself for concurrent use.
// State shared between the copies must synchronize itself.
type Duplicable[A any] interface {
	Actor
	Clone() A
}

// Coroutine is a message computed against a clone of actor A, concurrently
// with the mailbox loop and with other coroutines. There is no ordering
// between coroutines or with ordinary messages.
type Coroutine[A any, R any] interface {
	Calculate(ctx context.Context, actor A) R
}
