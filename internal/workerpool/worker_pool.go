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

// Package workerpool runs submitted tasks on reusable goroutines.
// Idle workers are kept per shard and exit once they have been idle
// for longer than the passivation interval.
package workerpool

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tochemey/messages/internal/ticker"
)

const maxShards = 128

var (
	// ErrNotStarted is returned when work is submitted before Start.
	ErrNotStarted = errors.New("worker pool not started")
	// ErrStopped is returned when work is submitted after Stop.
	ErrStopped = errors.New("worker pool stopped")
)

// WorkerPool manages workers across shards to reduce contention
// on the idle lists.
type WorkerPool struct {
	passivateAfter time.Duration
	numShards      int
	shards         []*shard
	mutex          sync.RWMutex
	started        atomic.Bool
	stopped        atomic.Bool
	spawnedWorkers atomic.Int64
	next           atomic.Uint32
	ticker         *ticker.Ticker
	stopCh         chan struct{}
	cleanupDone    chan struct{}
}

type worker struct {
	tasks    chan func()
	shard    *shard
	lastUsed atomic.Int64
}

// shard keeps its idle workers ordered by lastUsed, oldest first.
type shard struct {
	pool    *WorkerPool
	mu      sync.Mutex
	idle    []*worker
	stopped bool
}

// New creates a new worker pool with the given options.
func New(opts ...Option) *WorkerPool {
	wp := &WorkerPool{
		passivateAfter: time.Second,
		numShards:      1,
	}

	for _, opt := range opts {
		opt.Apply(wp)
	}
	return wp
}

// GetSpawnedWorkers returns the current count of live workers.
func (wp *WorkerPool) GetSpawnedWorkers() int {
	return int(wp.spawnedWorkers.Load())
}

// Start allocates the shards and begins passivating idle workers.
// It's safe to call Start multiple times.
func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()
	if wp.started.Load() {
		return
	}

	wp.shards = make([]*shard, wp.numShards)
	for i := range wp.shards {
		wp.shards[i] = &shard{pool: wp}
	}

	wp.ticker = ticker.New(wp.passivateAfter)
	wp.stopCh = make(chan struct{})
	wp.cleanupDone = make(chan struct{})
	wp.ticker.Start()
	wp.started.Store(true)
	go wp.cleanup()
}

// Stop closes every idle worker and rejects further submissions.
// Busy workers exit as soon as their current task returns.
func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()
	if !wp.started.Load() || wp.stopped.Swap(true) {
		return
	}

	close(wp.stopCh)
	<-wp.cleanupDone
	wp.ticker.Stop()

	for _, s := range wp.shards {
		s.mu.Lock()
		s.stopped = true
		for i, w := range s.idle {
			close(w.tasks)
			s.idle[i] = nil
		}
		s.idle = s.idle[:0]
		s.mu.Unlock()
	}
}

// SubmitWork hands the task to an idle worker, spawning one when none is available.
func (wp *WorkerPool) SubmitWork(task func()) error {
	wp.mutex.RLock()
	if !wp.started.Load() {
		wp.mutex.RUnlock()
		return ErrNotStarted
	}
	if wp.stopped.Load() {
		wp.mutex.RUnlock()
		return ErrStopped
	}
	s := wp.shards[wp.next.Add(1)%uint32(wp.numShards)]
	wp.mutex.RUnlock()

	return s.dispatch(task)
}

func (s *shard) dispatch(task func()) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}

	// most recently used first, so the oldest ones get passivated
	if n := len(s.idle); n > 0 {
		w := s.idle[n-1]
		s.idle[n-1] = nil
		s.idle = s.idle[:n-1]
		s.mu.Unlock()
		w.tasks <- task
		return nil
	}
	s.mu.Unlock()

	w := &worker{tasks: make(chan func()), shard: s}
	s.pool.spawnedWorkers.Add(1)
	go w.run()
	w.tasks <- task
	return nil
}

// park returns the worker to the idle list. It reports false when the
// shard is stopped and the worker should exit.
func (s *shard) park(w *worker) bool {
	w.lastUsed.Store(time.Now().UnixNano())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.idle = append(s.idle, w)
	return true
}

func (w *worker) run() {
	defer w.shard.pool.spawnedWorkers.Add(-1)
	for task := range w.tasks {
		task()
		if !w.shard.park(w) {
			return
		}
	}
}

func (wp *WorkerPool) cleanup() {
	defer close(wp.cleanupDone)
	for {
		select {
		case <-wp.stopCh:
			return
		case <-wp.ticker.Ticks:
			wp.passivate(time.Now().Add(-wp.passivateAfter).UnixNano())
		}
	}
}

// passivate closes the workers idle since before cutoff.
func (wp *WorkerPool) passivate(cutoff int64) {
	for _, s := range wp.shards {
		s.mu.Lock()
		pos := sort.Search(len(s.idle), func(i int) bool {
			return s.idle[i].lastUsed.Load() >= cutoff
		})
		for i := range pos {
			close(s.idle[i].tasks)
			s.idle[i] = nil
		}
		s.idle = append(s.idle[:0], s.idle[pos:]...)
		s.mu.Unlock()
	}
}
