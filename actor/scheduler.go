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
	"fmt"
	"time"

	gerrors "github.com/tochemey/messages/errors"
	"github.com/tochemey/messages/internal/workerpool"
)

// Scheduler runs a unit of work independently of the caller.
// It is the only capability the package needs from the runtime: spawned
// run loops, coroutines and stream forwarders all go through it.
type Scheduler interface {
	// Schedule runs task independently and returns without waiting for it.
	Schedule(task func()) error
}

// goroutineScheduler runs every task on its own goroutine
type goroutineScheduler struct{}

var _ Scheduler = goroutineScheduler{}

func (goroutineScheduler) Schedule(task func()) error {
	go task()
	return nil
}

// NewGoroutineScheduler returns the default Scheduler, which starts a goroutine per task.
func NewGoroutineScheduler() Scheduler {
	return goroutineScheduler{}
}

// PoolScheduler runs tasks on a sharded pool of reusable workers.
// A spawned run loop keeps its worker until the actor stops.
type PoolScheduler struct {
	pool *workerpool.WorkerPool
}

var _ Scheduler = (*PoolScheduler)(nil)

// NewPoolScheduler creates and starts a PoolScheduler. Workers idle for
// longer than passivateAfter exit.
func NewPoolScheduler(numShards int, passivateAfter time.Duration) *PoolScheduler {
	pool := workerpool.New(
		workerpool.WithNumShards(numShards),
		workerpool.WithPassivateAfter(passivateAfter))
	pool.Start()
	return &PoolScheduler{pool: pool}
}

// Schedule implements Scheduler.
func (x *PoolScheduler) Schedule(task func()) error {
	if err := x.pool.SubmitWork(task); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrSchedulerStopped, err)
	}
	return nil
}

// Workers returns the number of live workers
func (x *PoolScheduler) Workers() int {
	return x.pool.GetSpawnedWorkers()
}

// Stop rejects further tasks and releases idle workers.
// Tasks already running are left to complete.
func (x *PoolScheduler) Stop() {
	x.pool.Stop()
}
