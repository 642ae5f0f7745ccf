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
	"time"

	"github.com/flowchartsman/retry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	gerrors "github.com/tochemey/messages/errors"
	imetric "github.com/tochemey/messages/internal/metric"
	"github.com/tochemey/messages/log"
)

// State is the lifecycle state of a Context
type State int32

const (
	// CreatedState is the state before Run is called
	CreatedState State = iota
	// RunningState is the state while the loop handles messages
	RunningState
	// StoppingState is the state while the Stopping hook decides
	StoppingState
	// StoppedState is the state once the loop has exited
	StoppedState
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case CreatedState:
		return "Created"
	case RunningState:
		return "Running"
	case StoppingState:
		return "Stopping"
	case StoppedState:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Context owns the receive side of an actor's mailbox and runs the loop
// that drives the actor. A Context runs a single actor, once.
type Context[A Actor] struct {
	name           string
	mailbox        *mailbox[A]
	state          atomic.Int32
	logger         log.Logger
	scheduler      Scheduler
	initMaxRetries int
	initTimeout    time.Duration
	coroutines     *semaphore.Weighted
	meter          metric.Meter
	metric         *imetric.ContextMetric
	attributes     metric.MeasurementOption
}

// NewContext creates a Context with an empty mailbox.
func NewContext[A Actor](opts ...Option) (*Context[A], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	name := cfg.name
	if name == "" {
		var zero A
		name = fmt.Sprintf("%T", zero)
	}

	meter := imetric.NewProvider(cfg.meterProvider).Meter()
	contextMetric, err := imetric.NewContextMetric(meter)
	if err != nil {
		return nil, err
	}

	c := &Context[A]{
		name:           name,
		mailbox:        newMailbox[A](id, cfg.capacity, cfg.scheduler),
		logger:         cfg.logger.With("actor.id", id, "actor.type", name),
		scheduler:      cfg.scheduler,
		initMaxRetries: cfg.initMaxRetries,
		initTimeout:    cfg.initTimeout,
		meter:          meter,
		metric:         contextMetric,
		attributes: metric.WithAttributes(
			attribute.String("actor.id", id),
			attribute.String("actor.type", name)),
	}

	if cfg.maxCoroutines > 0 {
		c.coroutines = semaphore.NewWeighted(cfg.maxCoroutines)
	}
	return c, nil
}

// ID returns the identifier of the actor
func (c *Context[A]) ID() string {
	return c.mailbox.id
}

// Name returns the name used in logs and metrics
func (c *Context[A]) Name() string {
	return c.name
}

// State returns the current lifecycle state
func (c *Context[A]) State() State {
	return State(c.state.Load())
}

// Logger returns the logger of the context, tagged with the actor id and type
func (c *Context[A]) Logger() log.Logger {
	return c.logger
}

// Address returns a new handle to the mailbox. The caller owns the handle and
// should Release it once done; an actor keeping its own address in its state
// keeps itself alive until stopped explicitly.
func (c *Context[A]) Address() *Address[A] {
	return newAddress(c.mailbox)
}

// Spawn schedules Run on the context's Scheduler and returns an Address
// without waiting for the actor to start. The actor runs until it stops or
// ctx is cancelled. The context is claimed before Spawn returns, so a second
// Spawn or Run fails with ErrContextConsumed.
func (c *Context[A]) Spawn(ctx context.Context, actor A) (*Address[A], error) {
	if !c.state.CompareAndSwap(int32(CreatedState), int32(RunningState)) {
		return nil, gerrors.ErrContextConsumed
	}

	addr := c.Address()
	if err := c.scheduler.Schedule(func() {
		if err := c.run(ctx, actor); err != nil {
			c.logger.Errorf("actor %s exited: %v", c.name, err)
		}
	}); err != nil {
		// the actor never ran: nothing can be delivered through this context anymore
		c.mailbox.close()
		c.state.Store(int32(StoppedState))
		c.mailbox.terminate()
		addr.Release()
		return nil, err
	}
	return addr, nil
}

// Run drives actor until it stops and returns once Stopped has been called.
//
// Started runs first. Messages are then handled one at a time, in arrival
// order. When a stop is requested, or every Address has been released, the
// messages already queued are handled and Stopping decides whether the loop
// exits. Cancelling ctx stops the actor regardless of Stopping. On exit the
// mailbox is closed, pending requests fail with ErrReceiverDisconnected and
// Stopped runs exactly once.
//
// Run fails with ErrContextConsumed when called twice and with ErrInitFailure
// when Started keeps failing.
func (c *Context[A]) Run(ctx context.Context, actor A) error {
	if !c.state.CompareAndSwap(int32(CreatedState), int32(RunningState)) {
		return gerrors.ErrContextConsumed
	}
	return c.run(ctx, actor)
}

// run drives a context already claimed by Run or Spawn
func (c *Context[A]) run(ctx context.Context, actor A) error {
	registration, err := c.meter.RegisterCallback(c.observe, c.metric.MailboxDepth())
	if err != nil {
		c.logger.Warnf("failed to register mailbox depth callback: %v", err)
	} else {
		defer func() { _ = registration.Unregister() }()
	}

	defer c.recovery()

	if err := c.start(ctx, actor); err != nil {
		c.logger.Errorf("actor %s failed to start: %v", c.name, err)
		c.state.Store(int32(StoppingState))
		c.shutdown(context.WithoutCancel(ctx), actor)
		return err
	}

	c.logger.Infof("actor %s started", c.name)
	c.loop(ctx, actor)
	c.shutdown(context.WithoutCancel(ctx), actor)
	return nil
}

func (c *Context[A]) start(ctx context.Context, actor A) error {
	cctx, cancel := context.WithTimeout(ctx, c.initTimeout)
	defer cancel()

	retrier := retry.NewRetrier(c.initMaxRetries, time.Millisecond, c.initTimeout)
	if err := retrier.RunContext(cctx, actor.Started); err != nil {
		return gerrors.NewErrInitFailure(err)
	}
	return nil
}

func (c *Context[A]) loop(ctx context.Context, actor A) {
	for {
		select {
		case env := <-c.mailbox.envelopes:
			c.handle(ctx, actor, env)
		case sig := <-c.mailbox.signals:
			c.logger.Debugf("actor %s: %s", c.name, sig)
			c.drain(ctx, actor)

			c.state.Store(int32(StoppingState))
			if actor.Stopping(ctx) == Stop {
				return
			}
			c.logger.Debugf("actor %s vetoed the stop", c.name)
			c.state.Store(int32(RunningState))
		case <-ctx.Done():
			c.logger.Debugf("actor %s: %v", c.name, ctx.Err())
			c.state.Store(int32(StoppingState))
			_ = actor.Stopping(context.WithoutCancel(ctx))
			return
		}
	}
}

// drain handles the envelopes queued when the stop signal was observed.
// Envelopes arriving afterwards wait for the stopping decision.
func (c *Context[A]) drain(ctx context.Context, actor A) {
	for range len(c.mailbox.envelopes) {
		select {
		case env := <-c.mailbox.envelopes:
			c.handle(ctx, actor, env)
		default:
			return
		}
	}
}

func (c *Context[A]) handle(ctx context.Context, actor A, env envelope[A]) {
	start := time.Now()
	env.deliver(ctx, actor, c)
	c.metric.HandleDuration().Record(ctx, time.Since(start).Milliseconds(), c.attributes)
	c.metric.ProcessedCount().Add(ctx, 1, c.attributes)
}

func (c *Context[A]) shutdown(ctx context.Context, actor A) {
	if discarded := c.mailbox.close(); discarded > 0 {
		c.logger.Debugf("actor %s discarded %d pending message(s)", c.name, discarded)
		c.metric.DiscardedCount().Add(ctx, int64(discarded), c.attributes)
	}

	actor.Stopped(ctx)
	c.state.Store(int32(StoppedState))
	c.logger.Infof("actor %s stopped", c.name)
	c.mailbox.terminate()
}

// recovery releases the senders and waiters of an actor whose handler
// panicked, then lets the panic go on.
func (c *Context[A]) recovery() {
	if r := recover(); r != nil {
		c.mailbox.close()
		c.state.Store(int32(StoppedState))
		c.mailbox.terminate()
		panic(r)
	}
}

// consume marks an envelope delivered. Delivering twice is a logic error.
func (c *Context[A]) consume(consumed *atomic.Bool, message any) {
	if consumed.Swap(true) {
		c.logger.Panicf("envelope of %T delivered twice", message)
	}
}

func (c *Context[A]) observe(_ context.Context, observer metric.Observer) error {
	observer.ObserveInt64(c.metric.MailboxDepth(), int64(len(c.mailbox.envelopes)), c.attributes)
	return nil
}
