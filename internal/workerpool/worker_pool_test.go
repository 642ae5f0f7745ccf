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

package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWorkerPool(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		pool := New(WithNumShards(256), WithPassivateAfter(time.Minute))
		require.Equal(t, maxShards, pool.numShards)

		pool.Start()
		pool.Start()
		require.Zero(t, pool.GetSpawnedWorkers())

		workCount := 1000
		var executed atomic.Int64
		var wg sync.WaitGroup
		wg.Add(workCount)
		for range workCount {
			require.NoError(t, pool.SubmitWork(func() {
				defer wg.Done()
				executed.Add(1)
			}))
		}
		wg.Wait()

		require.EqualValues(t, workCount, executed.Load())
		require.NotZero(t, pool.GetSpawnedWorkers())

		pool.Stop()
		pool.Stop()
		require.Eventually(t, func() bool { return pool.GetSpawnedWorkers() == 0 }, time.Second, 5*time.Millisecond)
	})
	t.Run("When not started", func(t *testing.T) {
		pool := New()
		require.ErrorIs(t, pool.SubmitWork(func() {}), ErrNotStarted)
		pool.Stop()
		require.False(t, pool.stopped.Load())
	})
	t.Run("When stopped", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		pool := New()
		pool.Start()
		pool.Stop()
		require.ErrorIs(t, pool.SubmitWork(func() {}), ErrStopped)
	})
	t.Run("With idle workers passivated", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		pool := New(WithPassivateAfter(10 * time.Millisecond))
		pool.Start()

		done := make(chan struct{})
		require.NoError(t, pool.SubmitWork(func() { close(done) }))
		<-done

		require.Eventually(t, func() bool { return pool.GetSpawnedWorkers() == 0 }, time.Second, 5*time.Millisecond)
		pool.Stop()
	})
	t.Run("With idle workers reused", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		pool := New(WithPassivateAfter(time.Minute))
		pool.Start()

		for range 10 {
			done := make(chan struct{})
			require.NoError(t, pool.SubmitWork(func() { close(done) }))
			<-done
			// wait for the worker to park itself
			require.Eventually(t, func() bool {
				pool.shards[0].mu.Lock()
				defer pool.shards[0].mu.Unlock()
				return len(pool.shards[0].idle) == 1
			}, time.Second, time.Millisecond)
		}
		assert.Equal(t, 1, pool.GetSpawnedWorkers())
		pool.Stop()
	})
}
