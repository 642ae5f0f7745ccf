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
	"sync"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/messages/errors"
)

type signal int

const (
	// stopSignal is sent by Address.Stop
	stopSignal signal = iota
	// releasedSignal is sent when the last counted Address is released
	releasedSignal
)

func (s signal) String() string {
	if s == releasedSignal {
		return "all addresses released"
	}
	return "stop requested"
}

// mailbox is the channel pair shared by a Context and its addresses.
//
// Senders hold mu for reading while they wait for room in envelopes, and
// give up as soon as closing is closed. The loop closes closing first and then
// takes mu for writing, so once closed is set no envelope can slip in and
// whatever remains in envelopes can be discarded.
type mailbox[A Actor] struct {
	id         string
	envelopes  chan envelope[A]
	signals    chan signal
	closing    chan struct{}
	terminated chan struct{}
	mu         sync.RWMutex
	closed     bool
	closeOnce  sync.Once
	termOnce   sync.Once
	handles    atomic.Int64
	scheduler  Scheduler
}

func newMailbox[A Actor](id string, capacity int, scheduler Scheduler) *mailbox[A] {
	return &mailbox[A]{
		id:         id,
		envelopes:  make(chan envelope[A], capacity),
		signals:    make(chan signal, 1),
		closing:    make(chan struct{}),
		terminated: make(chan struct{}),
		scheduler:  scheduler,
	}
}

// enqueue waits for room in the mailbox. It fails when the mailbox closes
// first or when ctx is done.
func (m *mailbox[A]) enqueue(ctx context.Context, env envelope[A]) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return gerrors.ErrReceiverDisconnected
	}

	select {
	case m.envelopes <- env:
		return nil
	case <-m.closing:
		return gerrors.ErrReceiverDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

// signal never blocks: a pending signal already guarantees the loop will call Stopping.
func (m *mailbox[A]) signal(s signal) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	select {
	case m.signals <- s:
	default:
	}
}

func (m *mailbox[A]) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// close rejects every sender and discards the envelopes left behind.
// It returns the number of discarded envelopes.
func (m *mailbox[A]) close() (discarded int) {
	m.closeOnce.Do(func() {
		close(m.closing)
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()

		for {
			select {
			case env := <-m.envelopes:
				env.discard()
				discarded++
			default:
				return
			}
		}
	})
	return discarded
}

func (m *mailbox[A]) terminate() {
	m.termOnce.Do(func() { close(m.terminated) })
}
