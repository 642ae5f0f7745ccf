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
	"time"

	"go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/messages/errors"
	"github.com/tochemey/messages/internal/validation"
	"github.com/tochemey/messages/log"
)

// Option is the interface that applies a Context option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(cfg *config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(cfg *config)

// Apply applies the Context's option
func (f OptionFunc) Apply(cfg *config) {
	f(cfg)
}

type config struct {
	capacity       int
	logger         log.Logger
	scheduler      Scheduler
	meterProvider  metric.MeterProvider
	initMaxRetries int
	initTimeout    time.Duration
	maxCoroutines  int64
	name           string
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		capacity:       DefaultCapacity,
		logger:         log.DefaultLogger,
		scheduler:      goroutineScheduler{},
		initMaxRetries: DefaultInitMaxRetries,
		initTimeout:    DefaultInitTimeout,
	}

	for _, opt := range opts {
		opt.Apply(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *config) validate() error {
	return validation.New(validation.AllErrors()).
		AddValidator(validation.NewConditionValidator(cfg.capacity > 0, gerrors.ErrInvalidCapacity)).
		AddValidator(validation.NewConditionValidator(cfg.initTimeout > 0, gerrors.ErrInvalidTimeout)).
		AddAssertion(cfg.initMaxRetries > 0, "init max retries must be greater than zero").
		AddAssertion(cfg.maxCoroutines >= 0, "max coroutines must not be negative").
		AddAssertion(cfg.logger != nil, "logger is required").
		AddAssertion(cfg.scheduler != nil, "scheduler is required").
		Validate()
}

// WithCapacity sets the mailbox capacity. It must be greater than zero.
func WithCapacity(capacity int) Option {
	return OptionFunc(func(cfg *config) {
		cfg.capacity = capacity
	})
}

// WithLogger sets the logger used by the run loop
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *config) {
		cfg.logger = logger
	})
}

// WithScheduler sets the Scheduler that runs spawned loops,
// coroutines and stream forwarders
func WithScheduler(scheduler Scheduler) Option {
	return OptionFunc(func(cfg *config) {
		cfg.scheduler = scheduler
	})
}

// WithMetricProvider sets the otel MeterProvider used for the context instruments.
// The global MeterProvider is used otherwise.
func WithMetricProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(cfg *config) {
		cfg.meterProvider = provider
	})
}

// WithInitMaxRetries sets how many times the Started hook is attempted
func WithInitMaxRetries(retries int) Option {
	return OptionFunc(func(cfg *config) {
		cfg.initMaxRetries = retries
	})
}

// WithInitTimeout sets the time budget of the Started hook, retries included
func WithInitTimeout(timeout time.Duration) Option {
	return OptionFunc(func(cfg *config) {
		cfg.initTimeout = timeout
	})
}

// WithMaxCoroutines bounds how many coroutines may compute at once.
// Zero, the default, means unbounded.
func WithMaxCoroutines(n int64) Option {
	return OptionFunc(func(cfg *config) {
		cfg.maxCoroutines = n
	})
}

// WithName sets the name reported in logs and metrics.
// The actor's type name is used otherwise.
func WithName(name string) Option {
	return OptionFunc(func(cfg *config) {
		cfg.name = name
	})
}
