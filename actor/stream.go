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
	"iter"

	"github.com/tochemey/messages/future"
)

// ForwardStream notifies the actor of every value received from stream, in
// order, until stream is closed. It stops at the first failed notification
// and returns its error, or ctx's error when ctx is done first.
func ForwardStream[M Notification[A], A Actor](ctx context.Context, addr *Address[A], stream <-chan M) error {
	_, err := forwardStream(ctx, addr, stream)
	return err
}

// ForwardSeq notifies the actor of every value yielded by seq, in order.
// It stops at the first failed notification and returns its error.
func ForwardSeq[M Notification[A], A Actor](ctx context.Context, addr *Address[A], seq iter.Seq[M]) error {
	for msg := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addr.Notify(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// SpawnStreamForwarder runs ForwardStream on the actor's Scheduler. The
// returned Future resolves with the number of values forwarded once stream
// is closed, or with the error that ended the forwarding. The forwarder holds
// its own handle to the actor while it runs.
func SpawnStreamForwarder[M Notification[A], A Actor](ctx context.Context, addr *Address[A], stream <-chan M) future.Future[int] {
	promise := future.NewPromise[int]()
	handle := addr.Clone()

	if err := addr.mailbox.scheduler.Schedule(func() {
		defer handle.Release()
		count, err := forwardStream(ctx, handle, stream)
		if err != nil {
			promise.Failure(err)
			return
		}
		promise.Success(count)
	}); err != nil {
		handle.Release()
		promise.Failure(err)
	}
	return promise.Future()
}

func forwardStream[M Notification[A], A Actor](ctx context.Context, addr *Address[A], stream <-chan M) (int, error) {
	count := 0
	for {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		case msg, ok := <-stream:
			if !ok {
				return count, nil
			}
			if err := addr.Notify(ctx, msg); err != nil {
				return count, err
			}
			count++
		}
	}
}
