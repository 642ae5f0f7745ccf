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

package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFuture(t *testing.T) {
	t.Run("With success", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		f := New(func() (string, error) {
			return "pong", nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		result, err := f.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "pong", result)

		// awaiting again returns the same outcome
		result, err = f.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, "pong", result)
	})
	t.Run("With failure", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		want := errors.New("boom")
		f := New(func() (int, error) {
			return 0, want
		})

		result, err := f.Await(context.Background())
		require.ErrorIs(t, err, want)
		assert.Zero(t, result)
	})
	t.Run("With context canceled", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		release := make(chan struct{})
		f := New(func() (int, error) {
			<-release
			return 1, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.Await(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		close(release)

		// an expired wait does not stick to the future
		result, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result)
	})
	t.Run("With a completed future and a done context", func(t *testing.T) {
		promise := NewPromise[int]()
		promise.Success(7)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := promise.Future().Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, result)
	})
	t.Run("With concurrent awaiters", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		promise := NewPromise[int]()

		var wg sync.WaitGroup
		results := make([]int, 5)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = promise.Future().Await(context.Background())
			}(i)
		}

		promise.Success(42)
		wg.Wait()
		for _, result := range results {
			assert.Equal(t, 42, result)
		}
	})
}

func TestPromise(t *testing.T) {
	t.Run("With first completion winning", func(t *testing.T) {
		promise := NewPromise[int]()
		assert.True(t, promise.Success(1))
		assert.False(t, promise.Success(2))
		assert.False(t, promise.Failure(errors.New("late")))

		result, err := promise.Future().Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, result)
	})
	t.Run("With nobody awaiting", func(t *testing.T) {
		promise := NewPromise[string]()
		assert.True(t, promise.Failure(errors.New("dropped")))
	})
}
